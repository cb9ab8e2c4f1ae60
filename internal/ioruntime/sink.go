package ioruntime

import (
	"bufio"
	"database/sql"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/websocket"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"rowvm/internal/vmerr"
)

// openSourceURI resolves a source key to a readable stream. A bare path
// opens a file; ws:// and wss:// dial a WebSocket and expose its
// incoming messages as a byte stream, each message followed by "\n".
func openSourceURI(key string) (io.ReadCloser, error) {
	if strings.HasPrefix(key, "ws://") || strings.HasPrefix(key, "wss://") {
		conn, _, err := websocket.DefaultDialer.Dial(key, nil)
		if err != nil {
			return nil, vmerr.Wrap(vmerr.IOOpen, "dialing "+key, err)
		}
		return &wsReadCloser{conn: conn}, nil
	}
	f, err := os.Open(key)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.IOOpen, "opening "+key, err)
	}
	return f, nil
}

// wsReadCloser adapts a WebSocket connection's incoming text messages to
// io.Reader, each ReadMessage call refilling an internal buffer.
type wsReadCloser struct {
	conn *websocket.Conn
	buf  []byte
}

func (w *wsReadCloser) Read(p []byte) (int, error) {
	for len(w.buf) == 0 {
		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			return 0, io.EOF
		}
		w.buf = append(msg, '\n')
	}
	n := copy(p, w.buf)
	w.buf = w.buf[n:]
	return n, nil
}

func (w *wsReadCloser) Close() error {
	return w.conn.Close()
}

// openSink resolves a sink URI to a writable destination: sqlite://,
// postgres://, mysql://, sqlserver:// open a row sink backed by
// database/sql; ws:// and wss:// open a WebSocket text-message sink;
// anything else is a plain file path.
func openSink(uri string, appendMode bool) (Sink, error) {
	switch {
	case strings.HasPrefix(uri, "sqlite://"), strings.HasPrefix(uri, "postgres://"),
		strings.HasPrefix(uri, "mysql://"), strings.HasPrefix(uri, "sqlserver://"):
		return newSQLSink(uri)
	case strings.HasPrefix(uri, "ws://"), strings.HasPrefix(uri, "wss://"):
		return newWSSink(uri)
	default:
		return newFileSink(uri, appendMode)
	}
}

// fileSink is a plain buffered file writer.
type fileSink struct {
	f *os.File
	w *bufio.Writer
}

func newFileSink(path string, appendMode bool) (*fileSink, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.IOOpen, "opening sink "+path, err)
	}
	return &fileSink{f: f, w: bufio.NewWriter(f)}, nil
}

func (s *fileSink) WriteStr(str string) error {
	_, err := s.w.WriteString(str)
	return err
}

func (s *fileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}

// sqlSink writes each record as one row into a table with a single
// "line" TEXT column holding the record, trailing newlines trimmed. The
// record is not split into fields. The driver and
// table are taken from the URI: scheme selects the driver, the "table"
// query parameter names the destination (default "records").
type sqlSink struct {
	db          *sql.DB
	table       string
	placeholder string
}

func newSQLSink(uri string) (*sqlSink, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.IOOpen, "parsing sink uri "+uri, err)
	}
	driver, dsn := sqlDriverAndDSN(u)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.IOOpen, "opening sink "+uri, err)
	}
	table := u.Query().Get("table")
	if table == "" {
		table = "records"
	}
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS " + table + " (line TEXT)"); err != nil {
		db.Close()
		return nil, vmerr.Wrap(vmerr.IOOpen, "preparing sink table "+table, err)
	}
	return &sqlSink{db: db, table: table, placeholder: placeholderFor(driver)}, nil
}

func sqlDriverAndDSN(u *url.URL) (driver, dsn string) {
	switch u.Scheme {
	case "sqlite":
		return "sqlite", strings.TrimPrefix(u.Path, "/")
	case "postgres":
		return "postgres", u.String()
	case "mysql":
		return "mysql", strings.TrimPrefix(u.String(), "mysql://")
	case "sqlserver":
		return "sqlserver", u.String()
	default:
		return u.Scheme, u.String()
	}
}

// placeholderFor returns the bind-parameter syntax each driver expects
// for a single positional argument: lib/pq wants "$1", go-mssqldb wants
// "@p1", sqlite and mysql both accept a bare "?".
func placeholderFor(driver string) string {
	switch driver {
	case "postgres":
		return "$1"
	case "sqlserver":
		return "@p1"
	default:
		return "?"
	}
}

func (s *sqlSink) WriteStr(str string) error {
	_, err := s.db.Exec("INSERT INTO "+s.table+" (line) VALUES ("+s.placeholder+")", strings.TrimRight(str, "\n"))
	return err
}

func (s *sqlSink) Close() error {
	return s.db.Close()
}

// wsSink writes each record as one WebSocket text message.
type wsSink struct {
	conn *websocket.Conn
}

func newWSSink(uri string) (*wsSink, error) {
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, _, err := dialer.Dial(uri, nil)
	if err != nil {
		return nil, vmerr.Wrap(vmerr.IOOpen, "dialing sink "+uri, err)
	}
	return &wsSink{conn: conn}, nil
}

func (s *wsSink) WriteStr(str string) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(strings.TrimRight(str, "\n")))
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}

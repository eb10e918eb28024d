package flux

import (
	"os"
)

// Dump encodes v and writes the stream to path. The value is encoded fully
// in memory first, so an encoding failure never creates or truncates the
// destination. The file handle is released on every path; write and close
// failures surface as ErrIO errors wrapping the cause.
func Dump(v Value, path string) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &Error{Kind: ErrIO, Detail: "create " + path, Err: err}
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return &Error{Kind: ErrIO, Detail: "write " + path, Err: werr}
	}
	if cerr != nil {
		return &Error{Kind: ErrIO, Detail: "close " + path, Err: cerr}
	}
	return nil
}

// Load reads the stream at path and decodes it. Decoding errors pass
// through with their own classification; only handle-level failures are
// reported as ErrIO.
func Load(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, &Error{Kind: ErrIO, Detail: "read " + path, Err: err}
	}
	return Unmarshal(data)
}

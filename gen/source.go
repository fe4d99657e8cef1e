package gen

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrExists reports that a source file to be generated already exists.
// Existing files are never overwritten.
var ErrExists = errors.New("exists")

// CreateSource creates dir if necessary (mode 0755) and creates dir/name.h
// and dir/name.c for writing. If a file by either name already exists, no
// file is touched and the returned error wraps ErrExists. If the code file
// cannot be created after the header was, the header is closed and removed
// before returning.
func CreateSource(dir, name string) (head, code *os.File, err error) {
	if err = os.Mkdir(dir, 0755); err != nil && !os.IsExist(err) {
		return nil, nil, errors.Wrapf(err, "creating %s", dir)
	}

	path := filepath.Join(dir, name)
	head, err = os.OpenFile(path+".h", os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, nil, errors.Wrapf(ErrExists, "%s.h", path)
		}
		return nil, nil, errors.Wrapf(err, "creating %s.h", path)
	}

	code, err = os.OpenFile(path+".c", os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		head.Close()
		os.Remove(path + ".h")
		if os.IsExist(err) {
			return nil, nil, errors.Wrapf(ErrExists, "%s.c", path)
		}
		return nil, nil, errors.Wrapf(err, "creating %s.c", path)
	}
	return head, code, nil
}

package mark

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
)

func Wrap(err error, mark error, msg string) error {
	return markers.Mark(errors.Wrap(err, msg), mark)
}

func Message(mark error, msg string) error {
	return markers.Mark(errors.New(msg), mark)
}

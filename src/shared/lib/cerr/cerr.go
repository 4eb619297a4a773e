package cerr

import (
	"fmt"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

type F map[string]any

// Context accumulates fields that get attached as error details
// when the error is finally created or wrapped
type Context struct {
	fields F
}

func Field(key string, value any) Context {
	return Context{}.Field(key, value)
}

func Fields(fields F) Context {
	newCtx := Context{fields: F{}}
	for key, value := range fields {
		newCtx.fields[key] = value
	}

	return newCtx
}

func Wrap(err error) Wrapper {
	return Context{}.Wrap(err)
}

func Error(msg string) error {
	return Context{}.Error(msg)
}

func (c Context) Field(key string, value any) Context {
	newCtx := Context{fields: F{}}
	for existingKey, existingValue := range c.fields {
		newCtx.fields[existingKey] = existingValue
	}

	newCtx.fields[key] = value
	return newCtx
}

func (c Context) Wrap(err error) Wrapper {
	return Wrapper{fields: c.fields, err: err}
}

func (c Context) Error(msg string) error {
	return c.Wrap(nil).Error(msg)
}

type Wrapper struct {
	fields F
	err    error
}

func (w Wrapper) Error(msg string) error {
	var err error
	if w.err == nil {
		err = errors.New(msg)
	} else {
		err = errors.Wrap(w.err, msg)
	}

	for key, value := range w.fields {
		err = errors.WithDetail(err, fmt.Sprintf("%s: %v", key, value))
	}

	return err
}

func Log(err error) {
	log.Error(fmt.Sprintf("%+v", err))
}

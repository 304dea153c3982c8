package codec

import (
	"github.com/basiliskin/sajc/errs"
	"github.com/basiliskin/sajc/header"
)

func newNoCodec(typ header.FieldType) error {
	return errs.NewNoCodec(typ.String())
}

package api

import (
	"fmt"
	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/agrorating/internal/pkg/constants"
	"reflect"
	"strings"
)

type requestValidator struct {
	validate *validator.Validate
}

// NewValidator reports fields by their json name.
func NewValidator() echo.Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		return fmt.Errorf("%v: %w", err, constants.ErrBadRequest)
	}
	return nil
}

// binder validates every request it binds.
type binder struct {
	echo.DefaultBinder
}

func NewBinder() echo.Binder {
	return &binder{}
}

func (b *binder) Bind(i interface{}, c echo.Context) error {
	if err := b.DefaultBinder.Bind(i, c); err != nil {
		return err
	}
	return c.Validate(i)
}

type jsonSerializer struct {
	api sonic.API
}

func NewJSONSerializer() echo.JSONSerializer {
	return &jsonSerializer{api: sonic.ConfigStd}
}

func (s *jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := s.api.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, constants.ErrBadRequest)
	}
	return nil
}

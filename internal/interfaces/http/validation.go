package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Instancia compartida; validator cachea la información de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errBadRequest respuesta ya escrita; el handler solo debe retornar nil.
var errBadRequest = errors.New("respuesta de error enviada")

// parseBody decodifica el JSON y valida las etiquetas validate. Si falla escribe el 400
// y devuelve errBadRequest.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = fail(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido: "+err.Error())
		return errBadRequest
	}
	if err := validateStruct(out); err != nil {
		_ = fail(c, fiber.StatusBadRequest, CodeValidation, err.Error())
		return errBadRequest
	}
	return nil
}

// parseOptionalBody como parseBody pero acepta un cuerpo vacío.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return parseBody(c, out)
}

// validateStruct devuelve un mensaje legible para el primer campo inválido.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return fmt.Errorf("%s: %s", fe.Field(), validationMessage(fe))
	}
	return err
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "len":
		return "debe tener longitud " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "alpha":
		return "solo admite letras"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// paramID lee un parámetro de ruta entero positivo. Si no es válido escribe el 400.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		_ = fail(c, fiber.StatusBadRequest, CodeValidation, name+" debe ser un entero positivo")
		return 0, errBadRequest
	}
	return id, nil
}

// done convierte errBadRequest en nil: la respuesta ya fue escrita.
func done(err error) error {
	if errors.Is(err, errBadRequest) {
		return nil
	}
	return err
}

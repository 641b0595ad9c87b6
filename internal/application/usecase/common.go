package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
)

func notFound(kind string, id int64) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, id)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

// defaultString devuelve def si v está vacío.
func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// requireText valida un campo de texto obligatorio en un parche: presente implica no vacío.
func requireText(field string, o dto.Optional[string]) error {
	if o.Set && (o.Null || strings.TrimSpace(o.Value) == "") {
		return invalid("%s no puede estar vacío", field)
	}
	return nil
}

// requireEnum valida un enum en un parche: presente implica valor del conjunto.
func requireEnum(field string, o dto.Optional[string], valid func(string) bool) error {
	if !o.Set {
		return nil
	}
	if o.Null || !valid(o.Value) {
		return invalid("%s inválido", field)
	}
	return nil
}

// applyString asigna un campo obligatorio si vino en el parche.
func applyString(dst *string, o dto.Optional[string]) {
	if o.HasValue() {
		*dst = o.Value
	}
}

// applyNullable asigna un campo anulable: null lo limpia, valor lo reemplaza.
func applyNullable[T any](dst **T, o dto.Optional[T]) {
	if o.Set {
		*dst = o.Ptr()
	}
}

// applyTime asigna una fecha anulable desde un parche.
func applyTime(dst **time.Time, o dto.Optional[dto.Timestamp]) {
	if o.Set {
		*dst = dto.OptionalTime(o)
	}
}

func ptrString[T any](p *T) *string {
	if p == nil {
		return nil
	}
	return strPtr(fmt.Sprint(*p))
}

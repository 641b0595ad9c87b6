package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Optional distingue en un PATCH/PUT parcial entre campo ausente, null explícito y valor.
type Optional[T any] struct {
	Set   bool // el campo vino en el cuerpo
	Null  bool // vino como null
	Value T
}

// Some construye un Optional con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null construye un Optional con null explícito.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON solo se invoca si la clave está presente.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON emite null si el campo no tiene valor.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr devuelve nil si el campo es null o ausente.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// HasValue indica presencia con valor no nulo.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime acepta RFC 3339, YYYY-MM-DDTHH:MM[:SS] y YYYY-MM-DD. Sin zona se asume UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// Timestamp fecha/hora de entrada con formatos flexibles. "" equivale a sin fecha.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parsea con ParseTime.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// TimePtr devuelve nil si t es nil o vacío.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// OptionalTime convierte un Optional[Timestamp] en *time.Time (null o "" -> nil).
func OptionalTime(o Optional[Timestamp]) *time.Time {
	if !o.HasValue() {
		return nil
	}
	return o.Value.TimePtr()
}

// Date fecha sin hora; se serializa como YYYY-MM-DD.
type Date struct {
	time.Time
}

// MarshalJSON formatea como YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON acepta los mismos formatos que Timestamp y descarta la hora.
func (d *Date) UnmarshalJSON(data []byte) error {
	var ts Timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return err
	}
	y, m, day := ts.Date()
	if ts.IsZero() {
		d.Time = time.Time{}
		return nil
	}
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return nil
}

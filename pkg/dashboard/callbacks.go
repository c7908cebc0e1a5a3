package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownOutput — для виджета не зарегистрирован обработчик.
	ErrUnknownOutput = errors.New("unknown output")
	// ErrDuplicateOutput — на один виджет нельзя повесить два обработчика.
	ErrDuplicateOutput = errors.New("output already has a callback")
	// ErrInvalidInput — значение входного виджета не удалось разобрать.
	ErrInvalidInput = errors.New("invalid input value")
)

// CallbackFunc — чистая функция от текущих значений входных виджетов.
type CallbackFunc func(v Values) (any, error)

// Callback связывает выходной виджет с набором входных.
type Callback struct {
	Output string       `json:"output"`
	Inputs []string     `json:"inputs"`
	Func   CallbackFunc `json:"-"`
}

// Values — значения входных виджетов в виде JSON, как их прислал браузер.
type Values map[string]json.RawMessage

// String разбирает значение выпадающего списка.
func (v Values) String(id string) (string, error) {
	var s string
	if err := json.Unmarshal(v[id], &s); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidInput, id, err)
	}
	return s, nil
}

// Range разбирает значение слайдера диапазона [low, high].
func (v Values) Range(id string) (low, high float64, err error) {
	var pair []float64
	if err := json.Unmarshal(v[id], &pair); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %v", ErrInvalidInput, id, err)
	}
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("%w %q: expected two numbers, got %d", ErrInvalidInput, id, len(pair))
	}
	return pair[0], pair[1], nil
}

// Registry хранит явные привязки «выходной виджет → обработчик».
type Registry struct {
	callbacks map[string]Callback
	defaults  map[string]json.RawMessage
}

// NewRegistry создаёт реестр; defaults подставляются для входов, которых нет в запросе.
func NewRegistry(defaults map[string]any) (*Registry, error) {
	r := &Registry{
		callbacks: make(map[string]Callback),
		defaults:  make(map[string]json.RawMessage, len(defaults)),
	}
	for id, value := range defaults {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding default for %q: %w", id, err)
		}
		r.defaults[id] = raw
	}
	return r, nil
}

// Register добавляет обработчик.
func (r *Registry) Register(cb Callback) error {
	if _, ok := r.callbacks[cb.Output]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, cb.Output)
	}
	r.callbacks[cb.Output] = cb
	return nil
}

// Dispatch собирает значения входов обработчика и вызывает его.
// Лишние значения в state игнорируются.
func (r *Registry) Dispatch(output string, state Values) (any, error) {
	cb, ok := r.callbacks[output]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}

	values := make(Values, len(cb.Inputs))
	for _, id := range cb.Inputs {
		if raw, ok := state[id]; ok && len(raw) > 0 && string(raw) != "null" {
			values[id] = raw
			continue
		}
		values[id] = r.defaults[id]
	}
	return cb.Func(values)
}

// Callbacks возвращает зарегистрированные привязки, отсортированные по выходу.
func (r *Registry) Callbacks() []Callback {
	list := make([]Callback, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		list = append(list, cb)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Output < list[j].Output })
	return list
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultAssignmentID — ключ единственной записи состояния ротации.
const DefaultAssignmentID = "latest"

// MessageHeader — первая строка объявления.
const MessageHeader = "**This week's chores:**"

// RotationState — состояние ротации дежурств.
//
// Запись создаётся вручную (chorewheel state init) до первого запуска.
// Каждый успешный запуск сдвигает CurrentTurn на 1 по модулю len(People).
// Остальные поля системой не изменяются.
type RotationState struct {
	// People — упорядоченный список участников ротации.
	People []string `json:"people" yaml:"people"`

	// Chores — список дел, распределяемых каждую неделю.
	// Может быть длиннее или короче People: индексы берутся по модулю.
	Chores []string `json:"chores" yaml:"chores"`

	// CurrentTurn — смещение в People, с которого начинается распределение.
	CurrentTurn int `json:"current_turn" yaml:"current_turn"`
}

// Pairing — пара (участник, дело) для одного цикла.
type Pairing struct {
	Person string `json:"person"`
	Chore  string `json:"chore"`
}

// String возвращает строку объявления для пары.
func (p Pairing) String() string {
	return p.Person + " is assigned " + p.Chore
}

// Validate проверяет инварианты прочитанного состояния.
// CurrentTurn за пределами People допускается: Assign и NextTurn берут его по модулю.
func (s *RotationState) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.People,
			validation.Required.Error("must not be empty"),
			validation.Each(validation.Required.Error("must not contain blank names")),
		),
		validation.Field(&s.Chores, validation.NotNil.Error("is required")),
		validation.Field(&s.CurrentTurn, validation.Min(0).Error("must not be negative")),
	)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return &SchemaError{Message: err.Error(), Err: ErrInvalidState}
	}

	// validation.Errors — map, берём первое поле в детерминированном порядке
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	first := fields[0]
	return NewSchemaError(first, errs[first].Error())
}

// ValidateStored проверяет состояние перед записью в хранилище.
// Помимо Validate требует, чтобы CurrentTurn был индексом в People.
func (s *RotationState) ValidateStored() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.CurrentTurn >= len(s.People) {
		return NewSchemaError("current_turn",
			fmt.Sprintf("must be less than the number of people (%d)", len(s.People)))
	}
	return nil
}

// Assign вычисляет пары для текущего цикла.
//
// Для i-го дела исполнитель — People[(CurrentTurn + i) mod len(People)].
// Результат всегда содержит ровно len(Chores) пар.
func (s *RotationState) Assign() []Pairing {
	n := len(s.People)
	if n == 0 {
		return nil
	}

	start := s.turn()
	pairings := make([]Pairing, 0, len(s.Chores))
	for i, chore := range s.Chores {
		pairings = append(pairings, Pairing{
			Person: s.People[(start+i%n)%n],
			Chore:  chore,
		})
	}
	return pairings
}

// NextTurn возвращает значение CurrentTurn для следующего цикла.
// Результат всегда в диапазоне [0, len(People)).
func (s *RotationState) NextTurn() int {
	n := len(s.People)
	if n == 0 {
		return 0
	}
	return (s.turn() + 1) % n
}

// turn возвращает CurrentTurn, приведённый к [0, len(People)).
// Сначала берётся остаток, чтобы сложение не переполнялось.
func (s *RotationState) turn() int {
	n := len(s.People)
	if n == 0 || s.CurrentTurn < 0 {
		return 0
	}
	return s.CurrentTurn % n
}

// RenderMessage формирует текст объявления: заголовок и по строке на пару.
func RenderMessage(pairings []Pairing) string {
	lines := make([]string, len(pairings))
	for i, p := range pairings {
		lines[i] = p.String()
	}
	return MessageHeader + "\n" + strings.Join(lines, "\n")
}

// rawRotationItem — запись в том виде, в каком она лежит в хранилище.
type rawRotationItem struct {
	People      json.RawMessage `json:"people"`
	Chores      json.RawMessage `json:"chores"`
	CurrentTurn json.RawMessage `json:"current_turn"`
}

// DecodeRotationState разбирает сырую запись хранилища и проверяет её.
//
// Любое отсутствующее или некорректное поле возвращается как *SchemaError.
func DecodeRotationState(raw []byte) (*RotationState, error) {
	var item rawRotationItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, &SchemaError{Message: "record is not a JSON object", Err: err}
	}

	people, err := decodeStrings("people", item.People)
	if err != nil {
		return nil, err
	}

	chores, err := decodeStrings("chores", item.Chores)
	if err != nil {
		return nil, err
	}

	turn, err := decodeTurn(item.CurrentTurn)
	if err != nil {
		return nil, err
	}

	state := &RotationState{
		People:      people,
		Chores:      chores,
		CurrentTurn: turn,
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

func decodeStrings(field string, raw json.RawMessage) ([]string, error) {
	if isMissing(raw) {
		return nil, NewSchemaError(field, "is required")
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, NewSchemaError(field, "must be a list of strings")
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// decodeTurn принимает целое число или строку с целым числом.
func decodeTurn(raw json.RawMessage) (int, error) {
	if isMissing(raw) {
		return 0, NewSchemaError("current_turn", "is required")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, NewSchemaError("current_turn", "must be an integer")
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0, NewSchemaError("current_turn", fmt.Sprintf("must be an integer, got %T", v))
	}

	turn, err := strconv.Atoi(text)
	if err != nil {
		return 0, NewSchemaError("current_turn", fmt.Sprintf("must be an integer, got %q", text))
	}
	return turn, nil
}

func isMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

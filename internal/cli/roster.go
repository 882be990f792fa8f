package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/chorewheel/internal/domain"
)

// LoadRoster читает состояние ротации из YAML-файла.
//
// Формат:
//
//	people: [Alice, Bob]
//	chores: [Dishes, Trash]
//	current_turn: 0
func LoadRoster(path string) (*domain.RotationState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	return DecodeRoster(f)
}

// DecodeRoster разбирает YAML-описание состояния. Неизвестные поля — ошибка.
func DecodeRoster(r io.Reader) (*domain.RotationState, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var state domain.RotationState
	if err := dec.Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode roster: empty document")
		}
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return &state, nil
}

package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrInvalidMagic = errors.New("invalid magic")

// MaxBodyLen - защита от битого заголовка, который просит гигабайты
const MaxBodyLen = 256 << 20

func (s *SnapshotStore) Load(name string) (*domain.Snapshot, error) {
	return ReadFile(filepath.Join(s.SaveDir, name+BinaryExt))
}

// ReadFile читает снимок (.bmap или JSON) и проверяет сетку.
func ReadFile(path string) (*domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap *domain.Snapshot
	if strings.EqualFold(filepath.Ext(path), BinaryExt) {
		snap, err = readBinary(f)
	} else {
		snap = &domain.Snapshot{}
		err = json.NewDecoder(f).Decode(snap)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := snap.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

func readBinary(r io.Reader) (*domain.Snapshot, error) {
	// 1. Читаем заголовок целиком
	var header SnapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.BodyLen > MaxBodyLen {
		return nil, fmt.Errorf("body too large: %d", header.BodyLen)
	}

	// 2. Читаем тело
	body := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var snap domain.Snapshot
	dec := msgpack.NewDecoder(bytes.NewReader(body))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}

	// 3. Заголовок должен совпадать с телом
	if int(header.Width) != snap.Grid.Width || int(header.Height) != snap.Grid.Height ||
		int(header.ElementCount) != len(snap.Elements) || int(header.ModifierCount) != len(snap.Modifiers) {
		return nil, fmt.Errorf("header does not match body")
	}

	return &snap, nil
}

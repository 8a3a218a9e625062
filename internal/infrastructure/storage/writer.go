package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	MagicHeader string = `BMAP` // 4 байта
	Version1    uint32 = 1

	// BinaryExt - расширение упакованного снимка; все остальное читается как JSON
	BinaryExt = ".bmap"
)

// SnapshotFileHeader — точное представление заголовка файла в памяти.
// binary.Write пишет его целиком, так как тут нет слайсов и строк, только массивы и числа.
// Размеры сетки дублируются в заголовке, чтобы карту можно было опознать не декодируя тело.
type SnapshotFileHeader struct {
	Magic         [4]byte // 4 байта
	Version       uint32  // 4 байта
	Width         int32   // 4 байта
	Height        int32   // 4 байта
	CellFeet      float64 // 8 байт
	ElementCount  int32   // 4 байта
	ModifierCount int32   // 4 байта
	BodyLen       uint32  // 4 байта
}

// SnapshotStore хранит сохраненные карты коллаборатора в каталоге SaveDir.
type SnapshotStore struct {
	SaveDir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SnapshotStore{SaveDir: dir}
}

// Save пишет снимок в SaveDir/<name>.bmap и возвращает путь.
func (s *SnapshotStore) Save(name string, snap *domain.Snapshot) (string, error) {
	path := filepath.Join(s.SaveDir, name+BinaryExt)
	return path, WriteFile(path, snap)
}

// WriteFile выбирает формат по расширению: .bmap - бинарный, иначе JSON.
func WriteFile(path string, snap *domain.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), BinaryExt) {
		return writeBinary(f, snap)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func writeBinary(w io.Writer, snap *domain.Snapshot) error {
	// 1. Тело - msgpack с именами полей из json-тегов
	var body bytes.Buffer
	enc := msgpack.NewEncoder(&body)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// 2. Заголовок
	header := SnapshotFileHeader{
		Version:       Version1,
		Width:         int32(snap.Grid.Width),
		Height:        int32(snap.Grid.Height),
		CellFeet:      snap.Grid.CellFeet,
		ElementCount:  int32(len(snap.Elements)),
		ModifierCount: int32(len(snap.Modifiers)),
		BodyLen:       uint32(body.Len()),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	_, err := w.Write(body.Bytes())
	return err
}

package version

import (
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X .../internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Product - имя движка в /version и в приветствии сокета
const Product = "battlemap-engine"

// ProtocolVersion растет при несовместимых изменениях pkg/api
const ProtocolVersion = 1

// Номер сборки - число дней от начала работы над движком.
var buildEpoch = time.Date(
	2025, time.December, 4,
	0, 0, 0, 0,
	time.UTC,
)

// VersionInfo - метаданные сборки для /version.
type VersionInfo struct {
	Product    string `json:"product"`
	Protocol   int    `json:"protocol"`
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

func CalculateBuildID() (int, error) {
	return buildIDFor(BuildDate)
}

func buildIDFor(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", date, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", date)
	}

	// Обе даты в UTC, поэтому деление часов на 24 точное.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info можно вызывать в любой момент, ошибка сборки попадает в поле Error.
func Info() VersionInfo {
	info := VersionInfo{
		Product:   Product,
		Protocol:  ProtocolVersion,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String - человекочитаемая строка сборки для логов.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("%s protocol v%d, build unknown (%s)", info.Product, info.Protocol, info.Error)
	}

	return fmt.Sprintf(
		"%s protocol v%d, build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.Product,
		info.Protocol,
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

// Short - строка для приветствия сокета: "battlemap-engine/1+42".
func Short() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("%s/%d+dev", info.Product, info.Protocol)
	}
	return fmt.Sprintf("%s/%d+%d", info.Product, info.Protocol, info.BuildID)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

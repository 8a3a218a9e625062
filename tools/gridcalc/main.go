package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Elliott-ab/Battlemap-sub000/internal/agent"
	"github.com/Elliott-ab/Battlemap-sub000/internal/domain"
	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/internal/infrastructure/storage"
	"github.com/Elliott-ab/Battlemap-sub000/internal/systems"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
)

// Цветной вывод включается GRIDCALC_COLOR=1
var colorOutput = os.Getenv("GRIDCALC_COLOR") == "1"

func main() {
	logger.InitWith(os.Stderr, os.Getenv("LOG_LEVEL"), "text")

	if len(os.Args) < 3 {
		printHelp()
		return
	}

	// ping работает с адресом сервера, а не с файлом
	if os.Args[1] == "ping" {
		if err := runPing(os.Stdout, os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	snap, err := storage.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot load snapshot: %v\n", err)
		os.Exit(1)
	}
	args := os.Args[3:]
	svc := engine.NewService()

	switch os.Args[1] {
	case "reach":
		err = runReach(os.Stdout, svc, snap, args)
	case "vis":
		err = runVis(os.Stdout, svc, snap, args)
	case "group":
		err = runGroup(os.Stdout, svc, snap, args)
	case "hp":
		err = runHP(os.Stdout, snap, args)
	case "pack":
		err = runPack(os.Stdout, snap, args)
	default:
		printHelp()
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func printHelp() {
	fmt.Println(`Grid Calc - расчеты движка по снимку карты (.json или .bmap)
Commands:
  reach <snapshot> <actorId>           - достижимые клетки актора (с модификаторами)
  reach <snapshot> <x> <y> <feet>      - достижимые клетки из точки
  vis   <snapshot> [observerId]        - видимость (без ID - "любой враг")
  group <snapshot> <groupId> <dx> <dy> - сдвиг группы местности
  hp    <snapshot> <id> <baseHP>       - максимум HP с учетом модификаторов
  pack  <snapshot> <out>               - перепаковать снимок (.bmap или .json по расширению)
  ping  <ws-url> [codec]               - подключиться к серверу и вывести HELLO
Env:
  GRIDCALC_COLOR=1                     - цветной вывод`)
}

func atoi(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return n, nil
}

func runReach(w io.Writer, svc *engine.Service, snap *domain.Snapshot, args []string) error {
	var res domain.ReachabilityResult
	switch len(args) {
	case 1:
		id := domain.ElementID(args[0])
		budget, ok := svc.EffectiveBudget(id, snap)
		if !ok {
			return fmt.Errorf("no actor %q in snapshot", id)
		}
		fmt.Fprintf(w, "%s: %d ft\n", id, budget)
		res = svc.ReachabilityFor(id, snap)
	case 3:
		x, err := atoi(args, 0, "x")
		if err != nil {
			return err
		}
		y, err := atoi(args, 1, "y")
		if err != nil {
			return err
		}
		budget, err := atoi(args, 2, "feet")
		if err != nil {
			return err
		}
		res = svc.ComputeReachability(domain.Cell{X: x, Y: y}, budget, snap.Grid, snap.Elements)
	default:
		return fmt.Errorf("reach expects <actorId> or <x> <y> <feet>")
	}

	fmt.Fprint(w, renderReach(snap, res, colorOutput))
	fmt.Fprintf(w, "%d cells\n", len(res))
	return nil
}

func runVis(w io.Writer, svc *engine.Service, snap *domain.Snapshot, args []string) error {
	var observer domain.ElementID
	if len(args) > 0 {
		observer = domain.ElementID(args[0])
	}
	res := svc.ComputeVisibility(snap.Grid, snap.Elements, observer)
	fmt.Fprint(w, renderVisibility(snap, res, colorOutput))
	return nil
}

func runGroup(w io.Writer, svc *engine.Service, snap *domain.Snapshot, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("group expects <groupId> <dx> <dy>")
	}
	dx, err := atoi(args, 1, "dx")
	if err != nil {
		return err
	}
	dy, err := atoi(args, 2, "dy")
	if err != nil {
		return err
	}

	res := svc.ResolveGroupMove(args[0], dx, dy, snap.Grid, snap.Elements)
	if len(res.Anchors) == 0 {
		return fmt.Errorf("no terrain group %q in snapshot", args[0])
	}

	moved := applyAnchors(snap, res.Anchors)
	fmt.Fprintf(w, "requested (%d,%d) resolved (%d,%d) clamped=%v blocked=%v\n", dx, dy, res.Dx, res.Dy, res.Clamped, res.Blocked)
	fmt.Fprint(w, renderElements(moved, colorOutput))
	return nil
}

func runHP(w io.Writer, snap *domain.Snapshot, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("hp expects <id> <baseHP>")
	}
	e := snap.Find(domain.ElementID(args[0]))
	if e == nil || !e.IsActor() {
		return fmt.Errorf("no actor %q in snapshot", args[0])
	}
	base, err := atoi(args, 1, "baseHP")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d -> %d HP\n", e.ID, base, systems.EffectiveHP(base, e.Kind, snap.Modifiers))
	return nil
}

func runPack(w io.Writer, snap *domain.Snapshot, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("pack expects <out>")
	}
	if err := storage.WriteFile(args[0], snap); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %dx%d, %d elements\n", args[0], snap.Grid.Width, snap.Grid.Height, len(snap.Elements))
	return nil
}

func runPing(w io.Writer, wsURL string, args []string) error {
	codec := ""
	if len(args) > 0 {
		codec = args[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := agent.Dial(ctx, wsURL, codec)
	if err != nil {
		return err
	}
	defer c.Close()

	fmt.Fprintf(w, "session=%s color=%s version=%s\n", c.Hello.SessionID, c.Hello.Color, c.Hello.Version)
	return nil
}

// applyAnchors - копия снимка с новыми позициями группы
func applyAnchors(snap *domain.Snapshot, anchors map[domain.ElementID]domain.Cell) *domain.Snapshot {
	out := *snap
	out.Elements = make([]domain.Element, len(snap.Elements))
	copy(out.Elements, snap.Elements)
	for i := range out.Elements {
		if a, ok := anchors[out.Elements[i].ID]; ok {
			out.Elements[i].Anchor = a
		}
	}
	return &out
}

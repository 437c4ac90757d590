package bot

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
	lua "github.com/yuin/gopher-lua"
)

// LuaBot runs a strategy written in Lua. The script may define any of these
// globals; missing ones, script errors and illegal answers fall back to
// random play:
//
//	reveal(view)   -> "bat"
//	question(view) -> {card = "bat", target = 2, declare = "frog"}
//	respond(view)  -> "believe" | "doubt" | "pass"
//	pass(view)     -> {target = 3, declare = "mouse"}
//
// Seats are zero-based numbers everywhere. Scripts also get log(msg) and
// random(n), which returns 1..n from the game's seeded generator.
//
// A LuaBot owns a Lua VM and is not safe for concurrent use.
type LuaBot struct {
	name     string
	L        *lua.LState
	rng      *rand.Rand
	logger   *log.Logger
	fallback *RandomBot
}

// NewLuaBotFromFile loads a script from disk.
func NewLuaBotFromFile(path string, rng *rand.Rand, logger *log.Logger) (*LuaBot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua strategy: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewLuaBot(name, string(src), rng, logger)
}

// NewLuaBot compiles and runs source, which should define the strategy
// functions.
func NewLuaBot(name, source string, rng *rand.Rand, logger *log.Logger) (*LuaBot, error) {
	b := &LuaBot{
		name:     name,
		L:        lua.NewState(lua.Options{SkipOpenLibs: true}),
		rng:      rng,
		logger:   logger.WithPrefix("lua:" + name),
		fallback: NewRandomBot(rng, logger),
	}

	// Only libraries without filesystem or process access.
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := b.L.CallByParam(lua.P{Fn: b.L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			b.L.Close()
			return nil, fmt.Errorf("open lua library %s: %w", lib.name, err)
		}
	}
	// The base library can still read files.
	for _, name := range []string{"dofile", "loadfile", "require", "module"} {
		b.L.SetGlobal(name, lua.LNil)
	}

	b.L.SetGlobal("log", b.L.NewFunction(func(L *lua.LState) int {
		b.logger.Debug(L.CheckString(1))
		return 0
	}))
	b.L.SetGlobal("random", b.L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "n must be positive")
			return 0
		}
		L.Push(lua.LNumber(b.rng.IntN(n) + 1))
		return 1
	}))

	if err := b.L.DoString(source); err != nil {
		b.L.Close()
		return nil, fmt.Errorf("load lua strategy %s: %w", name, err)
	}
	return b, nil
}

func (b *LuaBot) Name() string { return "lua:" + b.name }

// Close releases the Lua VM.
func (b *LuaBot) Close() {
	b.L.Close()
}

// call invokes a global function with the view and returns its single
// result. ok is false when the function is missing or fails.
func (b *LuaBot) call(fn string, v game.View) (lua.LValue, bool) {
	f := b.L.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return lua.LNil, false
	}
	if err := b.L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, b.viewTable(v)); err != nil {
		b.logger.Warn("script error", "function", fn, "error", err)
		return lua.LNil, false
	}
	ret := b.L.Get(-1)
	b.L.Pop(1)
	return ret, true
}

func (b *LuaBot) ChooseReveal(v game.View) cards.CardType {
	if ret, ok := b.call("reveal", v); ok {
		if c, err := cards.Parse(lua.LVAsString(ret)); err == nil && slices.Contains(v.Hand, c) {
			return c
		}
		b.logger.Warn("illegal reveal", "value", ret.String())
	}
	return b.fallback.ChooseReveal(v)
}

func (b *LuaBot) ChooseQuestion(v game.View) Question {
	ret, ok := b.call("question", v)
	if tbl, isTable := ret.(*lua.LTable); ok && isTable {
		card, cerr := cards.Parse(lua.LVAsString(tbl.RawGetString("card")))
		declared, derr := cards.Parse(lua.LVAsString(tbl.RawGetString("declare")))
		target, tok := seatOf(tbl.RawGetString("target"))
		if cerr == nil && derr == nil && tok &&
			slices.Contains(v.Hand, card) && slices.Contains(v.Opponents(), target) {
			return Question{Card: card, Target: target, Declared: declared, Reasoning: b.Name()}
		}
		b.logger.Warn("illegal question", "card", tbl.RawGetString("card").String(),
			"target", tbl.RawGetString("target").String(), "declare", tbl.RawGetString("declare").String())
	}
	return b.fallback.ChooseQuestion(v)
}

func (b *LuaBot) Respond(v game.View) Response {
	if ret, ok := b.call("respond", v); ok {
		switch strings.ToLower(lua.LVAsString(ret)) {
		case "believe":
			return Response{Believe: true, Reasoning: b.Name()}
		case "doubt":
			return Response{Believe: false, Reasoning: b.Name()}
		case "pass":
			if len(v.PassTargets) > 0 {
				return Response{Pass: true, Reasoning: b.Name()}
			}
		}
		b.logger.Warn("illegal response", "value", ret.String())
	}
	return b.fallback.Respond(v)
}

func (b *LuaBot) ChoosePass(v game.View) Pass {
	ret, ok := b.call("pass", v)
	if tbl, isTable := ret.(*lua.LTable); ok && isTable {
		declared, derr := cards.Parse(lua.LVAsString(tbl.RawGetString("declare")))
		target, tok := seatOf(tbl.RawGetString("target"))
		if derr == nil && tok && slices.Contains(v.PassTargets, target) {
			return Pass{Target: target, Declared: declared, Reasoning: b.Name()}
		}
		b.logger.Warn("illegal pass", "target", tbl.RawGetString("target").String())
	}
	return b.fallback.ChoosePass(v)
}

func seatOf(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return game.NoSeat, false
	}
	return int(n), float64(n) == float64(int(n))
}

// viewTable converts a view into the table passed to script functions.
func (b *LuaBot) viewTable(v game.View) *lua.LTable {
	L := b.L
	t := L.NewTable()
	t.RawSetString("seat", lua.LNumber(v.Seat))
	t.RawSetString("phase", lua.LString(v.Phase.String()))
	t.RawSetString("turn_number", lua.LNumber(v.TurnNumber))
	t.RawSetString("hand", cardList(L, v.Hand))
	t.RawSetString("opponents", seatList(L, v.Opponents()))
	t.RawSetString("pass_targets", seatList(L, v.PassTargets))

	players := L.NewTable()
	for i, p := range v.Players {
		pt := L.NewTable()
		pt.RawSetString("seat", lua.LNumber(i))
		pt.RawSetString("name", lua.LString(p.Name))
		pt.RawSetString("hand_count", lua.LNumber(p.HandCount))
		pt.RawSetString("eliminated", lua.LBool(p.Eliminated))
		open := L.NewTable()
		for _, c := range cards.All() {
			open.RawSetString(c.String(), lua.LNumber(p.OpenCards.Get(c)))
		}
		pt.RawSetString("open", open)
		players.Append(pt)
	}
	t.RawSetString("players", players)

	if tv := v.Turn; tv != nil {
		tt := L.NewTable()
		tt.RawSetString("questioner", lua.LNumber(tv.Questioner))
		tt.RawSetString("answerer", lua.LNumber(tv.Answerer))
		if tv.DeclaredAs.Valid() {
			tt.RawSetString("declared", lua.LString(tv.DeclaredAs.String()))
		}
		if tv.KnownCard.Valid() {
			tt.RawSetString("known", lua.LString(tv.KnownCard.String()))
		}
		tt.RawSetString("players_in_turn", seatList(L, tv.PlayersInTurn))
		t.RawSetString("turn", tt)
	}
	return t
}

func cardList(L *lua.LState, cs []cards.CardType) *lua.LTable {
	t := L.NewTable()
	for _, c := range cs {
		t.Append(lua.LString(c.String()))
	}
	return t
}

func seatList(L *lua.LState, seats []int) *lua.LTable {
	t := L.NewTable()
	for _, s := range seats {
		t.Append(lua.LNumber(s))
	}
	return t
}

package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// LuaEngine is the gopher-lua backed Engine. A single Lua state backs all
// loaded scripts, so later scripts can call functions defined by earlier
// ones; the mutex serializes access because lua.LState is not safe for
// concurrent use.
type LuaEngine struct {
	mu    sync.Mutex
	state *lua.LState
	cfg   Config
}

var _ Engine = (*LuaEngine)(nil)

// NewLuaEngine creates a Lua engine with the given configuration.
func NewLuaEngine(cfg Config) (*LuaEngine, error) {
	L := lua.NewState()
	if cfg.EnableSandboxing {
		setupSandbox(L)
	} else {
		L.OpenLibs()
	}
	registerAPIFunctions(L)

	return &LuaEngine{state: L, cfg: cfg}, nil
}

// LoadScript compiles and runs the script body so its function definitions
// become available to ExecuteFunction.
func (e *LuaEngine) LoadScript(name string, content []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.DoString(string(content)); err != nil {
		return errors.Wrap(err, "loading script %q", name)
	}
	return nil
}

// LoadScriptFile loads a single Lua file.
func (e *LuaEngine) LoadScriptFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading script file %q", path)
	}
	return e.LoadScript(filepath.Base(path), content)
}

// LoadScriptDir loads every *.lua file in dir, in lexical order. Non-Lua
// files are ignored.
func (e *LuaEngine) LoadScriptDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "reading script directory %q", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		if err := e.LoadScriptFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteFunction calls funcName with the given arguments and returns its
// first result converted to a Go value. The call is bounded by the
// configured script timeout via the Lua state's context.
func (e *LuaEngine) ExecuteFunction(ctx context.Context, funcName string, args ...interface{}) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.state.GetGlobal(funcName)
	if fn == lua.LNil {
		return nil, errors.Wrap(ErrFunctionNotFound, "function %q", funcName)
	}

	if e.cfg.ScriptTimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.cfg.ScriptTimeoutMs)*time.Millisecond)
		defer cancel()
	}
	e.state.SetContext(ctx)
	defer e.state.SetContext(context.Background())

	luaArgs := make([]lua.LValue, len(args))
	for i, arg := range args {
		luaArgs[i] = convertGoToLua(e.state, arg)
	}

	err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, luaArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "executing function %q", funcName)
	}

	ret := e.state.Get(-1)
	e.state.Pop(1)
	return convertLuaToGo(ret), nil
}

// Close shuts down the Lua state. The engine must not be used afterwards.
func (e *LuaEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Close()
	return nil
}

// convertGoToLua maps a Go value onto the Lua type system. Unknown types
// fall back to their string form rather than erroring, so scripts always
// receive something printable.
func convertGoToLua(L *lua.LState, value interface{}) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []interface{}:
		tbl := L.NewTable()
		for _, item := range v {
			tbl.Append(convertGoToLua(L, item))
		}
		return tbl
	case map[string]interface{}:
		tbl := L.NewTable()
		for key, item := range v {
			tbl.RawSetString(key, convertGoToLua(L, item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}

// convertLuaToGo maps a Lua value back to Go. Numbers always come back as
// float64; tables become []interface{} when they are pure sequences and
// map[string]interface{} otherwise.
func convertLuaToGo(value lua.LValue) interface{} {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case *lua.LTable:
		return convertLuaTable(v)
	default:
		return v.String()
	}
}

func convertLuaTable(tbl *lua.LTable) interface{} {
	maxN := tbl.MaxN()
	if maxN > 0 {
		seq := make([]interface{}, 0, maxN)
		for i := 1; i <= maxN; i++ {
			seq = append(seq, convertLuaToGo(tbl.RawGetInt(i)))
		}
		return seq
	}

	result := make(map[string]interface{})
	tbl.ForEach(func(key, item lua.LValue) {
		result[key.String()] = convertLuaToGo(item)
	})
	return result
}

package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/insurevn/tetadvisor/pkg/log"
)

// setupSandbox opens the Lua state with only the safe standard libraries and
// strips filesystem and process access. Scripts keep string, table and math;
// io, os, require and the load family are nil.
func setupSandbox(L *lua.LState) {
	L.OpenLibs()
	removeUnsafeFunctions(L)

	L.Push(lua.LString("string"))
	lua.OpenString(L)
	L.SetGlobal("string", L.Get(-1))
	L.Pop(1)

	L.Push(lua.LString("table"))
	lua.OpenTable(L)
	L.SetGlobal("table", L.Get(-1))
	L.Pop(1)

	L.Push(lua.LString("math"))
	lua.OpenMath(L)
	L.SetGlobal("math", L.Get(-1))
	L.Pop(1)

	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("package", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	// print goes to the structured logger, not stdout
	L.SetGlobal("print", L.NewFunction(safePrint))
}

func removeUnsafeFunctions(L *lua.LState) {
	g := L.Get(-1)
	if t, ok := g.(*lua.LTable); ok {
		t.RawSetString("dofile", lua.LNil)
		t.RawSetString("loadfile", lua.LNil)
		t.RawSetString("load", lua.LNil)
		t.RawSetString("os", lua.LNil)
		t.RawSetString("io", lua.LNil)
		t.RawSetString("require", lua.LNil)
		t.RawSetString("package", lua.LNil)
	}
}

func safePrint(L *lua.LState) int {
	top := L.GetTop()
	args := make([]interface{}, top)
	for i := 1; i <= top; i++ {
		args[i-1] = convertLuaToGo(L.Get(i))
	}

	log.Debug("lua print", "args", args)
	return 0
}

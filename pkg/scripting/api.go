package scripting

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/insurevn/tetadvisor/pkg/log"
)

// registerAPIFunctions exposes a small helper table to scripts under the
// global name "advisor": logging, time, uuid and JSON helpers.
func registerAPIFunctions(L *lua.LState) {
	advisor := L.NewTable()

	L.SetField(advisor, "log", L.NewFunction(apiLog))
	L.SetField(advisor, "now", L.NewFunction(apiNow))
	L.SetField(advisor, "format_time", L.NewFunction(apiFormatTime))
	L.SetField(advisor, "uuid", L.NewFunction(apiUUID))
	L.SetField(advisor, "json_encode", L.NewFunction(apiJSONEncode))
	L.SetField(advisor, "json_decode", L.NewFunction(apiJSONDecode))

	L.SetGlobal("advisor", advisor)
}

func apiLog(L *lua.LState) int {
	level := L.CheckString(1)
	message := L.CheckString(2)

	switch level {
	case "debug":
		log.Debug("lua script message", "message", message)
	case "warn", "warning":
		log.Warn("lua script message", "message", message)
	case "error":
		log.Error("lua script message", "message", message)
	default:
		log.Info("lua script message", "message", message)
	}
	return 0
}

func apiNow(L *lua.LState) int {
	L.Push(lua.LNumber(time.Now().Unix()))
	return 1
}

func apiFormatTime(L *lua.LState) int {
	timestamp := L.CheckNumber(1)
	format := L.OptString(2, time.RFC3339)

	t := time.Unix(int64(timestamp), 0).UTC()
	L.Push(lua.LString(t.Format(format)))
	return 1
}

func apiUUID(L *lua.LState) int {
	L.Push(lua.LString(uuid.NewString()))
	return 1
}

func apiJSONEncode(L *lua.LState) int {
	value := L.CheckAny(1)

	encoded, err := json.Marshal(convertLuaToGo(value))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(lua.LString(encoded))
	return 1
}

func apiJSONDecode(L *lua.LState) int {
	jsonStr := L.CheckString(1)

	var decoded interface{}
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(convertGoToLua(L, decoded))
	return 1
}

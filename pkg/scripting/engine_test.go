package scripting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuaEngine_LoadScript(t *testing.T) {
	engine, err := NewLuaEngine(DefaultConfig())
	require.NoError(t, err)
	defer engine.Close()

	err = engine.LoadScript("valid", []byte(`
		function hello()
			return "xin chào"
		end
	`))
	assert.NoError(t, err)

	err = engine.LoadScript("invalid", []byte(`
		function broken(
			return "not lua"
		end
	`))
	assert.Error(t, err)
}

func TestLuaEngine_ExecuteFunction(t *testing.T) {
	engine, err := NewLuaEngine(DefaultConfig())
	require.NoError(t, err)
	defer engine.Close()

	err = engine.LoadScript("funcs", []byte(`
		function hello()
			return "xin chào"
		end

		function add(a, b)
			return a + b
		end

		function tags_for(text)
			if string.find(string.lower(text), "lì xì") then
				return {"pricing"}
			end
			return {}
		end

		function describe(args)
			return args.name .. " is " .. args.age
		end

		function profile()
			return {
				segment = "family",
				size = 4,
				coverage = { motor = true }
			}
		end
	`))
	require.NoError(t, err)

	t.Run("string return", func(t *testing.T) {
		result, err := engine.ExecuteFunction(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "xin chào", result)
	})

	t.Run("numeric arguments", func(t *testing.T) {
		result, err := engine.ExecuteFunction(context.Background(), "add", 5, 3)
		require.NoError(t, err)
		assert.Equal(t, float64(8), result)
	})

	t.Run("sequence return", func(t *testing.T) {
		result, err := engine.ExecuteFunction(context.Background(), "tags_for", "khuyến mãi lì xì")
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"pricing"}, result)
	})

	t.Run("map argument", func(t *testing.T) {
		args := map[string]interface{}{"name": "Minh", "age": 28}
		result, err := engine.ExecuteFunction(context.Background(), "describe", args)
		require.NoError(t, err)
		assert.Equal(t, "Minh is 28", result)
	})

	t.Run("table return", func(t *testing.T) {
		result, err := engine.ExecuteFunction(context.Background(), "profile")
		require.NoError(t, err)

		m, ok := result.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "family", m["segment"])
		assert.Equal(t, float64(4), m["size"])

		coverage, ok := m["coverage"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, coverage["motor"])
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := engine.ExecuteFunction(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFunctionNotFound)
	})
}

func TestLuaEngine_Sandboxing(t *testing.T) {
	engine, err := NewLuaEngine(Config{EnableSandboxing: true, ScriptTimeoutMs: 1000})
	require.NoError(t, err)
	defer engine.Close()

	err = engine.LoadScript("sandbox", []byte(`
		function os_blocked()
			return os == nil
		end

		function io_blocked()
			return io == nil
		end

		function require_blocked()
			return require == nil
		end
	`))
	require.NoError(t, err)

	for _, fn := range []string{"os_blocked", "io_blocked", "require_blocked"} {
		result, err := engine.ExecuteFunction(context.Background(), fn)
		require.NoError(t, err)
		assert.Equal(t, true, result, fn)
	}
}

func TestLuaEngine_LoadScriptFile(t *testing.T) {
	engine, err := NewLuaEngine(DefaultConfig())
	require.NoError(t, err)
	defer engine.Close()

	scriptPath := filepath.Join(t.TempDir(), "hook.lua")
	err = os.WriteFile(scriptPath, []byte(`
		function from_file()
			return "loaded"
		end
	`), 0o600)
	require.NoError(t, err)

	require.NoError(t, engine.LoadScriptFile(scriptPath))

	result, err := engine.ExecuteFunction(context.Background(), "from_file")
	require.NoError(t, err)
	assert.Equal(t, "loaded", result)
}

func TestLuaEngine_LoadScriptDir(t *testing.T) {
	engine, err := NewLuaEngine(DefaultConfig())
	require.NoError(t, err)
	defer engine.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`
		function from_a() return "a" end
	`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function from_b() return "b" end
	`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o600))

	require.NoError(t, engine.LoadScriptDir(dir))

	resultA, err := engine.ExecuteFunction(context.Background(), "from_a")
	require.NoError(t, err)
	assert.Equal(t, "a", resultA)

	resultB, err := engine.ExecuteFunction(context.Background(), "from_b")
	require.NoError(t, err)
	assert.Equal(t, "b", resultB)
}

func TestLuaEngine_APIHelpers(t *testing.T) {
	engine, err := NewLuaEngine(DefaultConfig())
	require.NoError(t, err)
	defer engine.Close()

	err = engine.LoadScript("api", []byte(`
		function round_trip()
			local encoded = advisor.json_encode({product = "travel_domestic", price = 150000})
			local decoded = advisor.json_decode(encoded)
			return decoded.product
		end

		function new_id()
			return advisor.uuid()
		end
	`))
	require.NoError(t, err)

	result, err := engine.ExecuteFunction(context.Background(), "round_trip")
	require.NoError(t, err)
	assert.Equal(t, "travel_domestic", result)

	id, err := engine.ExecuteFunction(context.Background(), "new_id")
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

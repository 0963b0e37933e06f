package intent

import (
	"context"

	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/scripting"
)

// hook function name looked up in the scripting engine
const classifyHookName = "classify_extra"

// ClassifyWithHooks augments rule-table classification with an optional Lua
// hook. When the engine defines classify_extra(text), its returned list of
// tag names is appended to the table-derived set (duplicates removed). A
// missing hook is not an error; a failing hook logs and falls back to the
// table result, so scripting problems never break the chat loop.
func (c *Classifier) ClassifyWithHooks(ctx context.Context, engine scripting.Engine, text string) []Tag {
	tags := c.Classify(text)
	if engine == nil {
		return tags
	}

	logger := log.FromContext(ctx).With("component", "intent_hooks")

	result, err := engine.ExecuteFunction(ctx, classifyHookName, text)
	if err != nil {
		if !errors.Is(err, scripting.ErrFunctionNotFound) {
			logger.WarnContext(ctx, "classify hook failed", "error", err)
		}
		return tags
	}

	extra, ok := result.([]interface{})
	if !ok {
		// an empty Lua table converts to an empty map, which means no tags
		if m, isMap := result.(map[string]interface{}); !isMap || len(m) > 0 {
			logger.WarnContext(ctx, "classify hook returned non-list result")
		}
		return tags
	}

	for _, v := range extra {
		name, ok := v.(string)
		if !ok {
			continue
		}
		tag := Tag(name)
		if !Has(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

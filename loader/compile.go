// Package loader loads Lua quest definitions into Go structs. The Lua VM is
// discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dailyquest/types"
)

// rawTask holds a task table before compilation.
type rawTask struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// compile converts collected Lua data into a Quest. Tasks keep their
// definition order.
func compile(coll *collector) (*types.Quest, error) {
	q := DefaultQuest()
	if coll.quest != nil {
		if t := getString(coll.quest, "title"); t != "" {
			q.Title = t
		}
		if s := getString(coll.quest, "subtitle"); s != "" {
			q.Subtitle = s
		}
	}

	if len(coll.tasks) == 0 {
		return nil, fmt.Errorf("no Task definitions found")
	}
	q.Tasks = make([]types.TaskDef, 0, len(coll.tasks))
	for _, raw := range coll.tasks {
		q.Tasks = append(q.Tasks, compileTask(raw))
	}
	return q, nil
}

func compileTask(raw rawTask) types.TaskDef {
	name := getString(raw.table, "name")
	if name == "" {
		name = raw.id
	}
	return types.TaskDef{
		ID:   raw.id,
		Name: name,
		Max:  getNumber(raw.table, "max", 0),
		Step: getNumber(raw.table, "step", 1),
		Unit: getString(raw.table, "unit"),
	}
}

// sortedLuaFiles returns .lua files with quest.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var questFile string
	var others []string
	for _, f := range files {
		if f == "quest.lua" {
			questFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if questFile != "" {
		return append([]string{questFile}, others...)
	}
	return others
}

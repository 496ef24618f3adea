package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the definition constructors as globals.
//
//	Quest { title = "...", subtitle = "..." }
//	Task "pushups" { name = "Push-ups", max = 100, step = 5, unit = "" }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		coll.quest = L.CheckTable(1)
		return 0
	}))

	// Task "id" { ... } is curried: Task("id") returns a function taking the table.
	L.SetGlobal("Task", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.tasks = append(coll.tasks, rawTask{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}

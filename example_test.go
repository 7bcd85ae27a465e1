package history_test

import (
	"fmt"

	history "github.com/Mayur-Pagote/README-Design-Kit-sub001"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

type Counter struct {
	Count int `json:"count"`
}

func ExampleManager() {
	m := history.New("counter", Counter{})

	m.SetState(Counter{Count: 1})
	m.SetState(Counter{Count: 2})
	fmt.Println(m.State().Count, m.CanUndo(), m.CanRedo())

	m.Undo()
	fmt.Println(m.State().Count, m.CanUndo(), m.CanRedo())

	m.Redo()
	fmt.Println(m.State().Count, m.CanUndo(), m.CanRedo())

	// Output:
	// 2 true false
	// 1 true true
	// 2 true false
}

func ExampleManager_SaveCheckpoint() {
	m := history.New("counter", Counter{})
	m.SetState(Counter{Count: 1})
	cp := m.SaveCheckpoint("v1")

	m.SetState(Counter{Count: 5})
	m.RestoreCheckpoint(cp.ID)
	fmt.Println(m.State().Count)

	m.Undo()
	fmt.Println(m.State().Count)

	// Output:
	// 1
	// 5
}

func ExampleNew_reload() {
	store := storage.NewMemory()

	m := history.New("counter", Counter{}, history.WithStore(store))
	m.SetState(Counter{Count: 3})

	reloaded := history.New("counter", Counter{}, history.WithStore(store))
	fmt.Println(reloaded.State().Count, reloaded.UndoDepth())

	// Output:
	// 3 1
}

func ExampleDiff() {
	p, _ := history.Diff(Counter{Count: 1}, Counter{Count: 2})
	fmt.Println(p)

	// Output:
	// ~ /count: 1 -> 2
}

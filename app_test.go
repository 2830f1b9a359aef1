package waterleaf

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState, "The nextState should be set correctly.")
	assert.True(t, app.stateTransitioning, "The stateTransitioning flag should be true.")

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state, "The app state should change correctly.")
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	assert.Panics(t, func() { app.addResources(MockResource2{}) }, "resources must be pointers")
}

func TestResource_Lookup(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("one"))

	r, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "one", r.name)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_SystemsReceiveResources(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("a"), NewMockResource2("b"))

	var got []string
	app.UseSystem(System(func(r1 *MockResource1, r2 *MockResource2, cmd *Commands) {
		got = append(got, r1.name+r2.name)
		cmd.Exit()
	}))
	app.Run()

	assert.Equal(t, []string{"ab"}, got)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource1) {}))
	assert.Panics(t, func() { app.Step() })
}

func TestApp_StageOrder(t *testing.T) {
	app := NewApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}
	app.UseSystem(System(record("finale")).InStage(Finale))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("render")).InStage(Render))

	custom := Stage{Name: "Physics", UpdateType: FixedUpdate}
	app.UseStage(custom, AfterStage(Update))
	app.UseSystem(System(record("physics")).InStage(custom))

	require.True(t, app.Step())
	assert.Equal(t, []string{"prelude", "update", "physics", "render", "finale"}, order)
}

func TestApp_UseStageUnknownTargetPanics(t *testing.T) {
	app := NewApp()
	assert.PanicsWithValue(t, "Stage Nowhere not found", func() {
		app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Nowhere"}))
	})
}

func TestApp_StatefulRun(t *testing.T) {
	const (
		loading State = iota
		playing
		done
	)
	app := NewAppBuilder().UseStates(loading, done).Build()

	var events []string
	app.UseSystem(System(func() { events = append(events, "enter loading") }).InState(OnEnter(loading)))
	app.UseSystem(System(func(cmd *Commands) {
		events = append(events, "loading")
		cmd.ChangeState(playing)
	}).InState(OnExecute(loading)))
	app.UseSystem(System(func() { events = append(events, "exit loading") }).InState(OnExit(loading)))
	app.UseSystem(System(func(cmd *Commands) {
		events = append(events, "playing")
		cmd.ChangeState(done)
	}).InState(OnExecute(playing)))
	app.UseSystem(System(func() { events = append(events, "exit done") }).InState(OnExit(done)))

	app.Run()

	assert.Equal(t, []string{"enter loading", "loading", "exit loading", "playing", "exit done"}, events)
	assert.Equal(t, done, app.State())
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InState(OnEnter(1)))
	})
}

func TestApp_ExitStopsAfterFrame(t *testing.T) {
	app := NewApp()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}))
	app.Run()
	assert.Equal(t, 3, frames)
	assert.True(t, app.Exiting())
}

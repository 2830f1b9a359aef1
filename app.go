package waterleaf

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any

	built   bool
	started bool
	exiting bool

	// set by FrameProfilerModule when stages are profiled
	stageProfiler *Profiler
}

func newApp() *App {
	return &App{
		stages:           append([]Stage(nil), defaultStages...),
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		resources:        make(map[reflect.Type]any),
	}
}

// NewApp returns a stateless App ready for UseModules and UseSystem.
func NewApp() *App {
	app := newApp()
	app.build()
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// UseModules installs modules right away, after the App was built.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

func (app *App) build() {
	if app.built {
		return
	}
	for _, stage := range app.stages {
		app.initStatefulStage(stage)
	}
	app.built = true
}

// Run executes frames until Exit is requested or, in stateful mode, the
// final state is reached.
func (app *App) Run() {
	app.build()

	if app.stateful {
		app.Logger().Infof("Running in stateful mode...")
	} else {
		app.Logger().Infof("Running in stateless mode...")
	}

	for app.Step() {
	}
}

// Step executes a single frame and reports whether another one should follow.
func (app *App) Step() bool {
	app.build()

	if !app.started {
		app.started = true
		if app.stateful {
			app.state = app.initialState
			app.callSystems(app.state, enter)
		}
	}

	app.callSystems(app.state, execute)

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}

		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			return false
		}
	}

	if app.exiting {
		if app.stateful {
			app.callSystems(app.state, exit)
		}
		return false
	}
	return true
}

// Exit stops Run after the current frame.
func (app *App) Exit() {
	app.exiting = true
}

func (app *App) Exiting() bool {
	return app.exiting
}

func (app *App) State() State {
	return app.state
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		if execute == phase {
			end := app.beginStageMeasure(stage)
			app.callStage(stage, state, phase)
			end()
			continue
		}
		app.callStage(stage, state, phase)
	}
}

func (app *App) callStage(stage Stage, state State, phase statePhase) {
	// On execute, call stateless/always run systems first
	if execute == phase {
		for _, system := range app.systemsStateless[stage.Name] {
			app.callSystem(system)
		}
	}

	if app.stateful {
		if systemsInStage, ok := app.systems[stage.Name]; ok {
			if systemsInState, ok := systemsInStage[state]; ok {
				if systemsInPhase, ok := systemsInState[phase]; ok {
					for _, system := range systemsInPhase {
						app.callSystem(system)
					}
				}
			}
		}
	}
}

func (app *App) beginStageMeasure(stage Stage) func() {
	if app.stageProfiler == nil {
		return func() {}
	}
	key, ok := app.stageProfiler.KeyOf(stage.Name)
	if !ok {
		return func() {}
	}
	return app.stageProfiler.Frames.Measure(key)
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %v must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

func (app *App) hasResource(resourceType reflect.Type) bool {
	_, ok := app.resources[resourceType]
	return ok
}

// Resource looks up the resource of type *T.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.panicUnresolved(systemType, systemValue, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.panicUnresolved(systemType, systemValue, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) panicUnresolved(systemType reflect.Type, systemValue reflect.Value, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	app.Logger().Errorf("%s", msg)
	panic(msg)
}

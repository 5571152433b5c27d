package roomxr

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/gekko3d/roomxr/engine/ar"
)

type Stage struct {
	Name string
}

var (
	Prelude    = Stage{Name: "Prelude"}
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	PreRender  = Stage{Name: "PreRender"}
	Render     = Stage{Name: "Render"}
	PostRender = Stage{Name: "PostRender"}
	Finale     = Stage{Name: "Finale"}
)

func defaultStages() []Stage {
	return []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}
}

// Frame is what every system sees for the current tick.
type Frame struct {
	Now time.Time
	Dt  time.Duration
	// XR is the device frame while an AR session is presenting.
	XR ar.Frame
}

// systemFn is any func whose parameters are pointers the scheduler can
// resolve: *Commands, *Frame, or a resource added with AddResources.
type systemFn any

type systemScheduleBuilder struct {
	name    string
	inStage Stage
	system  systemFn
}

func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		name:    systemName(system),
		inStage: Update,
		system:  system,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	sched.inStage = s
	return sched
}

// Named overrides the name derived from the function, for closures.
func (sched systemScheduleBuilder) Named(name string) systemScheduleBuilder {
	sched.name = name
	return sched
}

func systemName(system systemFn) string {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("system must be a func, got %T", system))
	}
	name := runtime.FuncForPC(v.Pointer()).Name()
	name = name[strings.LastIndex(name, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	idx := slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == where.target.Name })
	if idx < 0 {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}
	if where.position == stageAfter {
		idx++
	}
	app.stages = slices.Insert(app.stages, idx, stage)
	return app
}

type scheduledSystem struct {
	name string
	fn   systemFn
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	if !slices.ContainsFunc(app.stages, func(s Stage) bool { return s.Name == system.inStage.Name }) {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	if app.systems == nil {
		app.systems = make(map[string][]scheduledSystem)
	}
	app.systems[system.inStage.Name] = append(app.systems[system.inStage.Name], scheduledSystem{
		name: system.name,
		fn:   system.system,
	})
	return app
}

// Systems lists scheduled system names in execution order.
func (app *App) Systems() []string {
	var names []string
	for _, stage := range app.stages {
		for _, s := range app.systems[stage.Name] {
			names = append(names, stage.Name+"/"+s.name)
		}
	}
	return names
}

func (app *App) callSystems(frame *Frame) {
	for _, stage := range app.stages {
		for _, s := range app.systems[stage.Name] {
			app.callSystem(s, frame)
		}
	}
}

var (
	typeOfCommands = reflect.TypeFor[Commands]()
	typeOfFrame    = reflect.TypeFor[Frame]()
)

func (app *App) callSystem(s scheduledSystem, frame *Frame) {
	systemType := reflect.TypeOf(s.fn)
	systemValue := reflect.ValueOf(s.fn)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("system %s: parameter %d must be a pointer, got %s", s.name, i, argType))
		}
		underlyingType := argType.Elem()

		switch resource, argIsResource := app.resources[underlyingType]; {
		case underlyingType == typeOfCommands:
			args[i] = reflect.ValueOf(app.cmd)
		case underlyingType == typeOfFrame:
			args[i] = reflect.ValueOf(frame)
		case argIsResource:
			args[i] = reflect.ValueOf(resource)
		default:
			panic(fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				s.name, systemType, argType))
		}
	}
	systemValue.Call(args)
}

// addResources registers values systems can take by pointer. Each type may
// be added once per mount.
func (app *App) addResources(resources ...any) {
	if app.resources == nil {
		app.resources = make(map[reflect.Type]any)
	}
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource must be a pointer, got %T", resource))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
}

package runtime

import (
	"errors"
	"strconv"

	lwerrors "github.com/vango-dev/laiweb/internal/errors"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// Sentinel errors. Returned errors wrap these in coded errors from
// internal/errors, so test them with errors.Is.
var (
	// ErrAlreadyMounted is returned when mounting a mounted component.
	ErrAlreadyMounted = errors.New("laiweb: component already mounted")

	// ErrNotMounted is returned when unmounting or updating a component
	// that is not mounted.
	ErrNotMounted = errors.New("laiweb: component not mounted")

	// ErrInvalidIndex is returned for a negative insertion index.
	ErrInvalidIndex = errors.New("laiweb: invalid insertion index")

	// ErrUnknownKind is returned when mounting a node of unknown kind.
	ErrUnknownKind = errors.New("laiweb: unknown node kind")

	// ErrUnknownComponent is returned when a component node's type was not
	// created with Define.
	ErrUnknownComponent = errors.New("laiweb: unknown component type")

	// ErrUnknownMethod is returned by Instance.Call for a missing method.
	ErrUnknownMethod = errors.New("laiweb: unknown component method")

	// ErrNilRender is returned when a component renders nil.
	ErrNilRender = errors.New("laiweb: component rendered nil")
)

func errAlreadyMounted(name string) error {
	return lwerrors.New("L001").
		WithOp("mount").
		WithSubject(name).
		WithSuggestion("Unmount the component first, or create a new instance").
		Wrap(ErrAlreadyMounted)
}

func errNotMounted(op, name string) error {
	return lwerrors.New("L002").
		WithOp(op).
		WithSubject(name).
		Wrap(ErrNotMounted)
}

func errUnknownMethod(name, method string) error {
	return lwerrors.New("L004").
		WithOp("call").
		WithSubject(name + "." + method).
		Wrap(ErrUnknownMethod)
}

func errInvalidIndex(i int) error {
	return lwerrors.New("R001").
		WithOp("mount").
		WithSubject("index " + strconv.Itoa(i)).
		WithSuggestion("Use runtime.End to append").
		Wrap(ErrInvalidIndex)
}

func errUnknownKind(k vdom.Kind) error {
	return lwerrors.New("R002").
		WithOp("mount").
		WithSubject(k.String()).
		Wrap(ErrUnknownKind)
}

func errUnknownComponent(t vdom.ComponentType) error {
	name := "<nil>"
	if t != nil {
		name = t.ComponentName()
	}
	return lwerrors.New("R003").
		WithOp("mount").
		WithSubject(name).
		WithSuggestion("Create component types with runtime.Define").
		Wrap(ErrUnknownComponent)
}

func errNilRender(name string) error {
	return lwerrors.New("R004").
		WithOp("render").
		WithSubject(name).
		Wrap(ErrNilRender)
}

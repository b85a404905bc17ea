// Package ofono writes a selected plan's connection settings into a
// connection context of an oFono managed modem over the system D-Bus.
package ofono

import (
	"fmt"

	"github.com/andaru/mbwizard/catalog"
	"github.com/andaru/mbwizard/mberr"
	"github.com/godbus/dbus/v5"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Service is the oFono bus name
const Service = "org.ofono"

const (
	ifaceConnectionManager = "org.ofono.ConnectionManager"
	ifaceConnectionContext = "org.ofono.ConnectionContext"

	methodGetContexts = ifaceConnectionManager + ".GetContexts"
	methodAddContext  = ifaceConnectionManager + ".AddContext"
	methodSetProperty = ifaceConnectionContext + ".SetProperty"
)

// Context property names
const (
	PropertyType            = "Type"
	PropertyAccessPointName = "AccessPointName"
	PropertyUsername        = "Username"
	PropertyPassword        = "Password"
)

// DefaultContextType is the context type configured unless overridden.
const DefaultContextType = "internet"

// Caller is the subset of dbus.BusObject used by Client.
type Caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Bus resolves oFono object paths to callable objects.
type Bus interface {
	Object(path dbus.ObjectPath) Caller
}

type systemBus struct{ conn *dbus.Conn }

func (b systemBus) Object(path dbus.ObjectPath) Caller { return b.conn.Object(Service, path) }

// Client configures connection contexts. Every bus call is made once;
// the first failing call ends the operation.
type Client struct {
	bus         Bus
	contextType string
	closer      func() error
}

// Option is a Client option function
type Option func(*Client)

// WithContextType selects the context type to configure.
func WithContextType(t string) Option { return func(c *Client) { c.contextType = t } }

// New returns a Client calling oFono over bus.
func New(bus Bus, opts ...Option) *Client {
	c := &Client{bus: bus, contextType: DefaultContextType}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to the system bus and returns a Client using it. The
// connection is released by Close.
func Dial(opts ...Option) (*Client, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "system bus")
	}
	c := New(systemBus{conn: conn}, opts...)
	c.closer = conn.Close
	return c, nil
}

// Close releases the bus connection opened by Dial.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// Context returns the path of the modem's first context of the
// configured type, creating one if the modem has none.
func (c *Client) Context(modem string) (dbus.ObjectPath, error) {
	obj := c.bus.Object(dbus.ObjectPath(modem))

	call := obj.Call(methodGetContexts, 0)
	if call.Err != nil {
		return "", callFailed(methodGetContexts, call.Err)
	}
	contexts, err := decodeContexts(call.Body)
	if err != nil {
		return "", callFailed(methodGetContexts, err)
	}
	for _, ctx := range contexts {
		if t, ok := ctx.props[PropertyType].Value().(string); ok && t == c.contextType {
			glog.V(1).Infof("ofono: using %s context %s", t, ctx.path)
			return ctx.path, nil
		}
	}

	call = obj.Call(methodAddContext, 0, c.contextType)
	if call.Err != nil {
		return "", callFailed(methodAddContext, call.Err)
	}
	if len(call.Body) == 1 {
		if path, ok := call.Body[0].(dbus.ObjectPath); ok && path.IsValid() {
			glog.V(1).Infof("ofono: added %s context %s", c.contextType, path)
			return path, nil
		}
	}
	return "", errors.WithStack(mberr.NoContext(modem, mberr.WithMessage(
		fmt.Sprintf("no %s context and AddContext returned %v", c.contextType, call.Body))))
}

// Apply writes the access point name, username and password of info,
// in that order, into the modem's context.
func (c *Client) Apply(modem string, info catalog.PlanInfo) error {
	path, err := c.Context(modem)
	if err != nil {
		return err
	}
	obj := c.bus.Object(path)
	for _, prop := range []struct{ name, value string }{
		{PropertyAccessPointName, info.APN},
		{PropertyUsername, info.Username},
		{PropertyPassword, info.Password},
	} {
		if call := obj.Call(methodSetProperty, 0, prop.name, dbus.MakeVariant(prop.value)); call.Err != nil {
			return callFailed(methodSetProperty, errors.Wrap(call.Err, prop.name))
		}
		glog.V(1).Infof("ofono: %s %s set", path, prop.name)
	}
	return nil
}

type connContext struct {
	path  dbus.ObjectPath
	props map[string]dbus.Variant
}

// decodeContexts decodes the a(oa{sv}) reply of GetContexts.
func decodeContexts(body []interface{}) ([]connContext, error) {
	if len(body) != 1 {
		return nil, errors.Errorf("unexpected reply of %d values", len(body))
	}
	items, ok := body[0].([][]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected reply type %T", body[0])
	}
	contexts := make([]connContext, 0, len(items))
	for _, item := range items {
		if len(item) != 2 {
			return nil, errors.Errorf("unexpected context of %d fields", len(item))
		}
		path, ok := item[0].(dbus.ObjectPath)
		if !ok {
			return nil, errors.Errorf("unexpected context path type %T", item[0])
		}
		props, ok := item[1].(map[string]dbus.Variant)
		if !ok {
			return nil, errors.Errorf("unexpected context properties type %T", item[1])
		}
		contexts = append(contexts, connContext{path: path, props: props})
	}
	return contexts, nil
}

func callFailed(method string, err error) error {
	return errors.WithStack(mberr.BusCallFailed(method, mberr.WithMessage(err.Error())))
}

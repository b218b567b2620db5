// Package service provides a loopback mesh stack for a sensor node.
//
// Stack stands in for the external mesh stack: it accepts the profile
// record table during bootstrap (it satisfies bootstrap.Registrar), attaches
// to the finished composition and answers sensor queries.
//
// Queries arrive either as direct Get calls or as CBOR encoded wire.Request
// messages through HandleQuery:
//
//	stack := service.NewStack(service.Config{Logger: logger})
//	seq := bootstrap.New(bootstrap.Config{Node: node, Registrar: stack})
//	comp, err := seq.Run()
//	stack.Attach(comp)
//
//	resp := stack.Handle(ctx, &wire.Request{MessageID: 1, Operation: wire.OpGet})
//
// A query with property ID 0 returns every sensor of the addressed element.
// Delivery is serialized; sensors are never queried concurrently.
package service

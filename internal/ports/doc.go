// Package ports defines interfaces between layers in the hexagonal architecture.
// The engine port is implemented by the collaborator; the transform service
// port is implemented by the engine adapter and called by the sync controller.
// View ports are implemented by the derived surfaces the controller pushes to.
package ports

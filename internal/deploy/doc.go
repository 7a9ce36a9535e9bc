// Package deploy runs the deployment pipeline: validate settings, apply
// defaults, resolve the registry address, build the image remotely, update
// the running service, and discover its public endpoint.
//
// Steps run strictly in order and each collaborator is called at most once.
// The first failure ends the run; nothing already applied is rolled back.
package deploy

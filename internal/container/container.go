// Package container runs one-off containers through the docker CLI or the
// Docker Engine API.
package container

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrNonZeroExit is returned when the container's command fails.
var ErrNonZeroExit = errors.New("container exited with a non-zero status")

// Mount binds a host path into the container.
type Mount struct {
	Source string
	Target string
}

// Spec describes a one-off container. The container is removed afterwards.
type Spec struct {
	Image   string
	Command []string

	// User is "uid:gid" or a user name. Empty means the image's user.
	User string

	Mounts  []Mount
	WorkDir string

	// Interactive attaches the terminal to the container.
	Interactive bool
}

// Runner runs a Spec to completion.
type Runner interface {
	Run(ctx context.Context, spec Spec) error
}

// User formats a uid and gid as a container user.
func User(uid, gid int) string {
	return strconv.Itoa(uid) + ":" + strconv.Itoa(gid)
}

// ImageRef joins an image name and tag. An empty tag leaves the name as is.
func ImageRef(name, tag string) string {
	if tag == "" {
		return name
	}
	return name + ":" + tag
}

func validateSpec(spec Spec) error {
	if spec.Image == "" {
		return errors.New("container image is required")
	}
	for _, m := range spec.Mounts {
		if m.Source == "" || m.Target == "" {
			return fmt.Errorf("mount %q -> %q needs a source and a target", m.Source, m.Target)
		}
	}
	return nil
}

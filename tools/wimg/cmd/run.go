package cmd

import (
	"errors"
	"fmt"

	"webimages.io/libs/wicore"
)

func requireIO() error {
	if input == "" || output == "" {
		return errors.New("input and output are required")
	}
	if !wicore.IsImage(input) {
		return fmt.Errorf("unsupported input: %s", input)
	}
	if !wicore.IsWritable(output) {
		return fmt.Errorf("unsupported output format: %s", output)
	}
	return nil
}

// imageError turns a null or error handle into a Go error.
func imageError(h wicore.ImageHandle, what string) error {
	if h == 0 {
		return fmt.Errorf("%s: invalid argument", what)
	}
	if msg, ok := wicore.Images.ErrorMessage(h); ok {
		return fmt.Errorf("%s: %s", what, msg)
	}
	return nil
}

func grayError(h wicore.GrayHandle, what string) error {
	if h == 0 {
		return fmt.Errorf("%s: invalid argument", what)
	}
	if msg, ok := wicore.Grays.ErrorMessage(h); ok {
		return fmt.Errorf("%s: %s", what, msg)
	}
	return nil
}

func save(h wicore.ImageHandle, path string) error {
	if !wicore.Save(h, path) {
		return fmt.Errorf("could not save %s", path)
	}
	return nil
}

// runImage applies op to the input image and saves the result to output.
func runImage(name string, op func(wicore.ImageHandle) wicore.ImageHandle) error {
	if err := requireIO(); err != nil {
		return err
	}
	src := wicore.Open(input)
	defer wicore.Images.Release(src)
	if err := imageError(src, "open"); err != nil {
		return err
	}

	out := op(src)
	defer wicore.Images.Release(out)
	if err := imageError(out, name); err != nil {
		return err
	}
	return save(out, output)
}

// runGray applies op to the luma of the input image and saves the result.
func runGray(name string, op func(wicore.GrayHandle) wicore.GrayHandle) error {
	return runImage(name, func(h wicore.ImageHandle) wicore.ImageHandle {
		g := wicore.ToGray(h)
		defer wicore.Grays.Release(g)
		res := op(g)
		defer wicore.Grays.Release(res)
		return wicore.GrayToImage(res)
	})
}

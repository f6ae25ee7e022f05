// go-pixelbus
// Copyright (c) 2025 The Pixelbus Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-pixelbus.
//
// go-pixelbus is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-pixelbus is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-pixelbus; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package imagefile provides a file-backed rendering sink: each frame is
// painted into an RGBA image and written out as PNG. Besides being a
// usable producer backend, it doubles as the capture stand-in when testing
// the decode path end to end.
package imagefile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"regexp"
	"strings"

	pixelbus "github.com/PixelbusProject/go-pixelbus"
)

// frameNumberVerb matches an integer format verb like %d or %06d.
var frameNumberVerb = regexp.MustCompile(`%[-+ 0#]*[0-9]*d`)

// isNumbered reports whether path names one file per frame. It must hold
// exactly one integer verb: a stray percent sign that does not form a
// verb, or a path whose verb count leaves fmt error markers behind, is
// treated as a literal file name.
func isNumbered(path string) bool {
	if !frameNumberVerb.MatchString(path) {
		return false
	}
	return !strings.Contains(fmt.Sprintf(path, 0), "%!")
}

// Sink renders grids to PNG files. When the configured path contains an
// integer format verb (e.g. "frames/frame-%06d.png") each rendered frame
// gets its own numbered file; otherwise the file is overwritten in place,
// mirroring how an on-screen surface shows only the latest frame.
type Sink struct {
	path     string
	numbered bool
	frames   int
	closed   bool
}

// New creates an image file sink. A path with a literal percent sign that
// happens to form an integer verb (e.g. "%20d") must escape it as "%%".
func New(path string) (*Sink, error) {
	if path == "" {
		return nil, fmt.Errorf("empty output path")
	}
	return &Sink{
		path:     path,
		numbered: isNumbered(path),
	}, nil
}

// Encode paints a grid into a new RGBA image: cellSize pixels per block,
// with the grid's top-left corner at (originX, originY) and the margin
// filled black.
func Encode(grid *pixelbus.Grid, originX, originY, cellSize int) *image.RGBA {
	width := originX + grid.Cols()*cellSize
	height := originY + grid.Rows()*cellSize
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			c := grid.At(row, col)
			cell := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			for dy := 0; dy < cellSize; dy++ {
				for dx := 0; dx < cellSize; dx++ {
					img.SetRGBA(originX+col*cellSize+dx, originY+row*cellSize+dy, cell)
				}
			}
		}
	}
	return img
}

// Render paints the grid and writes it to the sink's path.
func (s *Sink) Render(grid *pixelbus.Grid, originX, originY, cellSize int) error {
	if s.closed {
		return pixelbus.ErrSinkClosed
	}
	if cellSize <= 0 {
		return fmt.Errorf("cell size must be positive: %d", cellSize)
	}

	path := s.path
	if s.numbered {
		path = fmt.Sprintf(s.path, s.frames)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, Encode(grid, originX, originY, cellSize)); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	s.frames++
	return nil
}

// Frames returns how many frames have been written.
func (s *Sink) Frames() int {
	return s.frames
}

// Close marks the sink closed
func (s *Sink) Close() error {
	s.closed = true
	return nil
}

// Type returns the sink type
func (s *Sink) Type() pixelbus.SinkType {
	return pixelbus.SinkImage
}

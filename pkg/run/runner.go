/*
   FluxDisk - floppy track codec
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of FluxDisk.

   FluxDisk is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   FluxDisk is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with FluxDisk. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/xelalexv/fluxdisk/pkg/disk"
	"github.com/xelalexv/fluxdisk/pkg/disk/base"
	"github.com/xelalexv/fluxdisk/pkg/disk/format"
)

//
const runnerHelpEpilogue = `- When a flag can be set via environment variable, the variable name is given
  in parenthesis at the end of the flag explanation. Note however that a flag,
  when specified overrides an environment variable.
`

/*
	NewRunner creates a base runner for commands to use. The parameters are
	passed to the base command wrapped by this runner.
*/
func NewRunner(use, short, long, helpEpilogue string,
	exec func() error) *Runner {
	return &Runner{
		Command: *NewCommand(use, short, long, helpEpilogue, exec),
	}
}

//
type Runner struct {
	//
	Command
	//
	Address string
	//
	TrackType string
	Fill      string
}

// AddAPISettings adds the settings needed for talking to the API server.
func (r *Runner) AddAPISettings() {
	// Implementation Note: This cannot be included in NewRunner, but rather has
	// to be called from the top level command type. Otherwise, we will confuse
	// Cobra/Viper and the settings will not be filled with their values.
	r.AddSetting(&r.Address, "address", "a", "FLUXDISK_ADDRESS", "127.0.0.1:8888",
		"address of API server", false)
}

// AddCodecSettings adds the settings for selecting the track codec.
func (r *Runner) AddCodecSettings() {
	r.AddSetting(&r.TrackType, "type", "t", "FLUXDISK_TYPE",
		base.LEMMINGS.String(), "track type", false)
	r.AddSetting(&r.Fill, "fill", "", "FLUXDISK_FILL", "",
		"fill pattern for sectors that could not be decoded", false)
}

//
func (r *Runner) handler() (base.Handler, error) {
	typ := base.GetTrackType(r.TrackType)
	if typ == base.UNKNOWN {
		return nil, fmt.Errorf("unknown track type: %s", r.TrackType)
	}
	return disk.NewHandlerWithFill(typ, []byte(r.Fill))
}

//
func (r *Runner) apiCall(method, path string, json bool,
	body io.Reader) (io.ReadCloser, error) {

	client := &http.Client{}
	req, err := http.NewRequest(
		method, fmt.Sprintf("http://%s%s", r.Address, path), body)
	if err != nil {
		return nil, err
	}

	if json {
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("Accept", "application/json")
	} else {
		req.Header.Add("Content-Type", "text/plain")
		req.Header.Add("Accept", "text/plain")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API call failed with %s: %s",
			resp.Status, strings.TrimSpace(string(msg)))
	}

	return resp.Body, nil
}

//
func getExtension(file string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
}

//
func isBitsFile(file string) bool {
	return getExtension(file) == "bits"
}

// readTrackFile reads a decoded track from file, with the format determined
// by the file extension
func readTrackFile(file string, strict bool) (*base.Track, error) {

	form, err := format.NewFormat(getExtension(file))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return form.Read(bufio.NewReader(f), strict)
}

//
func readBitsFile(file string) (*format.BitsImage, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return format.ReadBits(bufio.NewReader(f))
}

// createFile creates file for writing, asking for confirmation if it exists and
// force is not set. When the user declines, nil is returned for both.
func createFile(file string, force bool) (*os.File, error) {
	if !force {
		if _, err := os.Stat(file); err == nil &&
			!GetUserConfirmation("File exists, overwrite?") {
			return nil, nil
		}
	}
	return os.Create(file)
}

// writeOutput writes to file through write. If file is empty or -, stdout is
// used.
func writeOutput(file string, force bool, write func(io.Writer) error) error {

	if file == "" || file == "-" {
		return write(os.Stdout)
	}

	f, err := createFile(file, force)
	if err != nil || f == nil {
		return err
	}
	defer f.Close()

	out := bufio.NewWriter(f)
	if err := write(out); err != nil {
		return err
	}
	return out.Flush()
}

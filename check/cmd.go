// Copyright 2026 RetailNext, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package check

import "github.com/alecthomas/kingpin/v2"

var (
	Cmd = kingpin.Command("check", "Verify files against a manifest")

	cmdManifest = Cmd.Arg("manifest", "Manifest to verify (md5sum text, json or yaml)").Required().ExistingFile()
	cmdRoot     = Cmd.Flag("root", "Resolve relative names against this directory instead of the manifest's").ExistingDir()
	cmdQuiet    = Cmd.Flag("quiet", "Don't print OK for each verified file").Bool()
)

func FlagOptions() Options {
	return Options{
		Manifest: *cmdManifest,
		Root:     *cmdRoot,
		Quiet:    *cmdQuiet,
	}
}

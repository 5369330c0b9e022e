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

package sum

import "github.com/alecthomas/kingpin/v2"

var (
	Cmd = kingpin.Command("sum", "Print the MD5 digest of each file")

	cmdFiles  = Cmd.Arg("files", "Files to hash").Required().Strings()
	cmdOutput = Cmd.Flag("output", "Also write a manifest to this path").Short('o').String()
	cmdFormat = Cmd.Flag("format", "Manifest format (text, json, yaml); guessed from --output when empty").Enum("", "text", "json", "yaml")

	TextCmd       = kingpin.Command("text", "Print the MD5 digest of a string")
	textCmdString = TextCmd.Arg("string", "String to hash").Required().String()
)

func FlagOptions() Options {
	return Options{
		Files:  *cmdFiles,
		Output: *cmdOutput,
		Format: *cmdFormat,
	}
}

func TextArg() string {
	return *textCmdString
}

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

package manifest

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"github.com/retailnext/md5hasher/md5"
)

func (m Manifest) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(m)
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	return easyjson.Unmarshal(data, m)
}

func (m Manifest) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"created":`)
	out.Raw(m.Created.MarshalJSON())
	out.RawString(`,"files":{`)
	for i, name := range m.Names() {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(name)
		out.RawByte(':')
		m.Files[name].MarshalEasyJSON(out)
	}
	out.RawString(`}}`)
}

// UnmarshalEasyJSON rejects unknown fields.
func (m *Manifest) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "created":
			if data := in.Raw(); in.Ok() {
				in.AddError(m.Created.UnmarshalJSON(data))
			}
		case "files":
			m.Files = make(map[string]md5.Digest)
			in.Delim('{')
			for !in.IsDelim('}') {
				name := in.String()
				in.WantColon()
				var digest md5.Digest
				digest.UnmarshalEasyJSON(in)
				m.Files[name] = digest
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.AddError(&jlexer.LexerError{
				Offset: in.GetPos(),
				Reason: "unknown field",
				Data:   key,
			})
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

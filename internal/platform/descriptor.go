// Copyright 2025 The srcinspect Authors. All rights reserved.
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

package platform

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"
)

// XML platform descriptor. Every element is optional; unrecognized elements
// are ignored by the decoder. Values are decoded as text so that malformed
// numbers can be skipped instead of failing the whole document.
type descriptor struct {
	XMLName     xml.Name        `xml:"platform"`
	DefaultSign string          `xml:"default-sign"`
	CharBit     string          `xml:"char_bit"`
	Sizeof      *sizeofElements `xml:"sizeof"`
}

type sizeofElements struct {
	Short      string `xml:"short"`
	Int        string `xml:"int"`
	Long       string `xml:"long"`
	LongLong   string `xml:"long-long"`
	Float      string `xml:"float"`
	Double     string `xml:"double"`
	LongDouble string `xml:"long-double"`
	Pointer    string `xml:"pointer"`
	SizeT      string `xml:"size_t"`
	WChar      string `xml:"wchar_t"`
}

// LoadDescriptor reads an XML platform descriptor and patches the given ABI
// with every field the document specifies. The root element must be named
// "platform". Fields absent from the document keep their previous values, so a
// descriptor may override just a single width. Derived bit widths are
// recomputed once after all elements are applied.
func LoadDescriptor(filename string, abi *ABI) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return applyDescriptor(content, abi)
}

func applyDescriptor(content []byte, abi *ABI) error {
	var doc descriptor
	if err := xml.Unmarshal(content, &doc); err != nil {
		return err
	}

	if sign := strings.TrimSpace(doc.DefaultSign); sign != "" {
		abi.DefaultSign = sign[0]
	}
	applyInt(&abi.CharBit, doc.CharBit)
	if doc.Sizeof != nil {
		applyInt(&abi.SizeOfShort, doc.Sizeof.Short)
		applyInt(&abi.SizeOfInt, doc.Sizeof.Int)
		applyInt(&abi.SizeOfLong, doc.Sizeof.Long)
		applyInt(&abi.SizeOfLongLong, doc.Sizeof.LongLong)
		applyInt(&abi.SizeOfFloat, doc.Sizeof.Float)
		applyInt(&abi.SizeOfDouble, doc.Sizeof.Double)
		applyInt(&abi.SizeOfLongDouble, doc.Sizeof.LongDouble)
		applyInt(&abi.SizeOfPointer, doc.Sizeof.Pointer)
		applyInt(&abi.SizeOfSizeT, doc.Sizeof.SizeT)
		applyInt(&abi.SizeOfWChar, doc.Sizeof.WChar)
	}

	abi.recalculate()
	return nil
}

// applyInt overwrites target when text holds a valid integer. Empty (absent)
// and malformed values leave the previous value untouched.
func applyInt(target *int, text string) {
	if value, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		*target = value
	}
}

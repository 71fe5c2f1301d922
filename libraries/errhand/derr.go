// Copyright 2026 Dolthub, Inc.
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

package errhand

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// VerboseError is an error that can describe itself at more than one level of detail.
type VerboseError interface {
	error
	Verbose() string
}

type DErrorBuilder struct {
	dispMsg string
	details []string
	cause   error
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// BuildDError starts a DError with the given display message.
func BuildDError(dispFmt string, args ...interface{}) *DErrorBuilder {
	return &DErrorBuilder{dispMsg: sprintf(dispFmt, args)}
}

// BuildIf starts a DError caused by |err|, or returns nil when |err| is nil. Every builder method
// accepts a nil receiver, so a chain begun by BuildIf builds nil for a nil error.
func BuildIf(err error, dispFmt string, args ...interface{}) *DErrorBuilder {
	if err == nil {
		return nil
	}
	return &DErrorBuilder{dispMsg: sprintf(dispFmt, args), cause: err}
}

func (builder *DErrorBuilder) AddDetails(detailsFmt string, args ...interface{}) *DErrorBuilder {
	if builder == nil {
		return nil
	}
	builder.details = append(builder.details, sprintf(detailsFmt, args))
	return builder
}

func (builder *DErrorBuilder) AddCause(cause error) *DErrorBuilder {
	if builder == nil {
		return nil
	}
	builder.cause = cause
	return builder
}

func (builder *DErrorBuilder) Build() VerboseError {
	if builder == nil {
		return nil
	}
	return &DError{
		DisplayMsg: builder.dispMsg,
		Details:    strings.Join(builder.details, "\n"),
		cause:      builder.cause,
	}
}

// DError is an error meant for display on the command line.
type DError struct {
	DisplayMsg string
	Details    string
	cause      error
}

var _ VerboseError = (*DError)(nil)

func NewDError(dispMsg, details string, cause error) *DError {
	return &DError{DisplayMsg: dispMsg, Details: details, cause: cause}
}

func (derr *DError) Error() string {
	return color.RedString(derr.DisplayMsg)
}

func (derr *DError) Unwrap() error {
	return derr.cause
}

// Verbose returns the display message followed by the details and the indented cause.
func (derr *DError) Verbose() string {
	sections := []string{derr.Error()}

	if derr.Details != "" {
		sections = append(sections, derr.Details)
	}

	if derr.cause != nil {
		causeStr := derr.cause.Error()
		if vCause, ok := derr.cause.(VerboseError); ok {
			causeStr = vCause.Verbose()
		}
		sections = append(sections, "cause:", indent(causeStr, "\t\t"))
	}

	return strings.Join(sections, "\n")
}

func indent(str, indentStr string) string {
	lines := strings.Split(str, "\n")
	return indentStr + strings.Join(lines, "\n"+indentStr)
}

// PanicToVError runs |f|, turning a panic inside it into a DError with the message |errMsg|.
func PanicToVError(errMsg string, f func() VerboseError) (err VerboseError) {
	defer func() {
		if r := recover(); r != nil {
			bdr := BuildDError(errMsg)
			if recErr, ok := r.(error); ok {
				bdr.AddCause(recErr)
			} else {
				bdr.AddDetails(fmt.Sprint(r))
			}
			err = bdr.Build()
		}
	}()
	return f()
}

// Copyright 2025 walteh LLC
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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/tidy/cmd/tidy/opts"
	"github.com/walteh/tidy/pkg/sorter"
	"gitlab.com/tozd/go/errors"
)

// NewNormalizeCmd creates a command that prints normalized file names
func NewNormalizeCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <name...>",
		Short: "Print the name each file would be renamed to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), sorter.Normalize(name))
			}
			return nil
		},
	}
}

// NewCategorizeCmd creates a command that prints the category of file names
func NewCategorizeCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <name...>",
		Short: "Print the category each file would be sorted into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sorterOpts, err := opts.Config.SorterOptions()
			if err != nil {
				return errors.Errorf("building categorizer: %w", err)
			}

			for _, name := range args {
				_, ext := sorter.SplitExt(sorter.Normalize(name))
				cat := sorterOpts.Categorizer.Categorize(ext)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, cat)
			}
			return nil
		},
	}
}

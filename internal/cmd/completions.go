package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var boxfileExtensions = []string{"yml", "yaml", "toml"}

// completeImageNames completes --image with the images of the Boxfile
// named by the first argument, or the one found from the working directory.
func completeImageNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	_, project, err := loadProject(args)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range project.ImageNames() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers dynamic completions once all commands exist.
func registerCompletions() {
	_ = renderCmd.RegisterFlagCompletionFunc("image", completeImageNames)

	for _, c := range []*cobra.Command{lintCmd, imagesCmd} {
		c.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return boxfileExtensions, cobra.ShellCompDirectiveFilterFileExt
		}
	}
}

func init() {
	cobra.OnInitialize(registerCompletions)
}

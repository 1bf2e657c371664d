package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:     "images [boxfile]",
	Aliases: []string{"ls"},
	Short:   "List images and their base references",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runImages,
}

func init() {
	addLoadFlags(imagesCmd.Flags())
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	_, project, err := loadProject(args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tDIRECTIVES\tPORTS")
	for _, name := range project.ImageNames() {
		m, _ := project.Image(name)
		ports := m.Ports()
		portList := "-"
		if len(ports) > 0 {
			portList = ""
			for i, p := range ports {
				if i > 0 {
					portList += ","
				}
				portList += fmt.Sprint(p.Port)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, m.Base().Reference(), len(m.Directives()), portList)
	}
	return w.Flush()
}

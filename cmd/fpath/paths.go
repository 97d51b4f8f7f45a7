package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fpath-go/internal/fpath"
)

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse PATH...",
		Short: "Show how paths are parsed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			pp := o.printer(cmd)
			for _, raw := range args {
				p, err := st.Parse(raw)
				if err != nil {
					return err
				}
				pp.Emit(newPathInfo(p))
			}
			return nil
		},
	}
}

func newCombineCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "combine BASE PATH...",
		Short: "Append relative paths to BASE, left to right",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			p, err := st.Parse(args[0])
			if err != nil {
				return err
			}
			for _, rel := range args[1:] {
				if p, err = p.CombineString(rel); err != nil {
					return err
				}
			}
			o.printer(cmd).Emit(newPathInfo(p))
			return nil
		},
	}
}

func newRelCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rel PATH BASE",
		Short: "Print PATH relative to BASE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			p, err := st.Parse(args[0])
			if err != nil {
				return err
			}
			rel, err := p.RelativizeString(args[1])
			if err != nil {
				return err
			}
			o.printer(cmd).Emit(newPathInfo(rel))
			return nil
		},
	}
}

func newRelateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "relate X Y",
		Short: "Describe how X relates to Y",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			x, err := st.Parse(args[0])
			if err != nil {
				return err
			}
			y, err := st.Parse(args[1])
			if err != nil {
				return err
			}
			rel, same := fpath.Relate(x, y)
			o.printer(cmd).Emit(relationInfo{X: x.String(), Y: y.String(), Relation: rel.String(), SameRoot: same})
			return nil
		},
	}
}

func newAncestorsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors PATH",
		Short: "List the parents of PATH, nearest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			p, err := st.Parse(args[0])
			if err != nil {
				return err
			}
			o.printer(cmd).Emit(newPathList(p.Ancestors()))
			return nil
		},
	}
}

// editFlags are applied in field order.
type editFlags struct {
	root          string
	noRoot        bool
	noDrive       bool
	before, after int
	name          string
	stripAllExt   bool
	stripExt      bool
	ext           string
	dir, file     bool
}

func newEditCmd(o *options) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit PATH",
		Short: "Rewrite parts of PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.dir && f.file {
				return fmt.Errorf("--dir and --file are mutually exclusive")
			}
			st, err := o.pathStyle()
			if err != nil {
				return err
			}
			p, err := st.Parse(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("root") {
				r, err := st.Parse(f.root)
				if err != nil {
					return err
				}
				p = p.WithRoot(r)
			}
			if f.noRoot {
				p = p.WithoutRoot()
			}
			if f.noDrive {
				p = p.WithoutDrive()
			}
			if flags.Changed("before") {
				p = p.SubpathBefore(f.before)
			}
			if flags.Changed("after") {
				p = p.SubpathAfter(f.after)
			}
			if flags.Changed("name") {
				if p, err = p.WithName(f.name); err != nil {
					return err
				}
			}
			if f.stripAllExt {
				p = p.WithoutExtensions()
			} else if f.stripExt {
				p = p.WithoutExtension()
			}
			if flags.Changed("ext") {
				if p, err = p.WithExtension(f.ext); err != nil {
					return err
				}
			}
			if f.dir {
				p = p.AsDirectory()
			}
			if f.file {
				p = p.AsFile()
			}

			o.printer(cmd).Emit(newPathInfo(p))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.root, "root", "", "Replace the drive, host and root with those of this path")
	flags.BoolVar(&f.noRoot, "no-root", false, "Drop the drive, host and root")
	flags.BoolVar(&f.noDrive, "no-drive", false, "Drop the drive or host but keep the root")
	flags.IntVar(&f.before, "before", 0, "Keep the root and the first N segments")
	flags.IntVar(&f.after, "after", 0, "Keep the segments after the first N")
	flags.StringVar(&f.name, "name", "", "Replace the final name")
	flags.BoolVar(&f.stripExt, "strip-ext", false, "Remove the last extension")
	flags.BoolVar(&f.stripAllExt, "strip-all-ext", false, "Remove every extension")
	flags.StringVar(&f.ext, "ext", "", `Replace the extension ("" removes it)`)
	flags.BoolVar(&f.dir, "dir", false, "Mark the result as a directory")
	flags.BoolVar(&f.file, "file", false, "Mark the result as a file")
	return cmd
}

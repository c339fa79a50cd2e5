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
	"fmt"
	"os"
	"reflect"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//
const epilogueHeader = `
Notes:

`

/*
	Logging is set up on package initialization from these environment
	variables:

		LOG_FORMAT		`json` for JSON logging
		LOG_FORCE_COLORS	non-empty for colorized text logging
		LOG_METHODS		non-empty for including the calling method
		LOG_LEVEL		`panic`, `fatal`, `error`, `warn`, `info`, `debug`, `trace`

	Logs go to stderr, several actions write their results to stdout.
*/
func init() {
	configureLogging(os.Getenv)
}

//
func configureLogging(env func(string) string) {

	log.SetOutput(os.Stderr)

	switch {
	case strings.ToLower(env("LOG_FORMAT")) == "json":
		log.SetFormatter(&log.JSONFormatter{})
	case env("LOG_FORCE_COLORS") != "":
		log.SetFormatter(&log.TextFormatter{ForceColors: true})
	}

	log.SetReportCaller(env("LOG_METHODS") != "")

	level := env("LOG_LEVEL")
	if level == "" {
		return
	}
	if l, err := log.ParseLevel(level); err != nil {
		log.Errorf("invalid log level '%s', use one of: panic, fatal, error, "+
			"warn, info, debug, trace", level)
	} else {
		log.SetLevel(l)
	}
}

// UnderTest turns exits into panics
var UnderTest bool

// DieOnError prints e and exits if e is not nil.
func DieOnError(e error) {
	if e != nil {
		Die("%v", e)
	}
}

// Die prints the formatted message and exits.
func Die(msg string, params ...interface{}) {
	text := strings.TrimRight(fmt.Sprintf(msg, params...), "\n")
	fmt.Fprintln(os.Stderr, text)
	if UnderTest {
		panic(text)
	}
	os.Exit(1)
}

// GetUserConfirmation asks a yes/no question on the terminal, default is no.
func GetUserConfirmation(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var res string
	fmt.Scanln(&res)
	return strings.ToLower(strings.TrimSpace(res)) == "y"
}

// NewCommand wraps a Cobra command that calls exec when executed. The optional
// helpEpilogue is appended to the generated help text.
func NewCommand(use, short, long, helpEpilogue string,
	exec func() error) *Command {

	ret := Command{
		cmd: &cobra.Command{
			Use:   use,
			Short: short,
			Long:  long,
			RunE: func(*cobra.Command, []string) error {
				return exec()
			},
			SilenceErrors:         true,
			SilenceUsage:          true,
			DisableFlagsInUseLine: true,
		},
		viper:        viper.New(),
		settings:     map[string]*setting{},
		helpEpilogue: helpEpilogue,
	}
	ret.helpFunc = ret.cmd.HelpFunc()
	ret.cmd.SetHelpFunc(ret.help)
	return &ret
}

/*
	Command ties Cobra flags and environment variables together through Viper.
	A flag takes precedence over its variable. Missing required settings are
	reported naming both, which Cobra and Viper don't do on their own
	(https://github.com/spf13/viper/issues/397).

	Every command has its own Viper instance.
*/
type Command struct {
	cmd      *cobra.Command
	viper    *viper.Viper
	settings map[string]*setting
	// positional arguments left after parsing
	Args []string
	//
	helpEpilogue string
	helpFunc     func(*cobra.Command, []string)
}

//
func (c *Command) help(cmd *cobra.Command, args []string) {
	if c.helpFunc != nil {
		c.helpFunc(cmd, args)
	}
	if c.helpEpilogue != "" {
		fmt.Fprintln(cmd.OutOrStdout(), epilogueHeader+c.helpEpilogue)
	} else {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}

// Execute runs the command with args, or with os.Args if args is empty.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 {
		c.cmd.SetArgs(args)
	}
	return c.cmd.Execute()
}

/*
	AddSetting binds target to the long flag, its short form and, if not empty,
	environment variable env. target has to be a pointer to a string, int, uint
	or bool. def is the default, nil meaning the zero value. Required settings
	cannot have a default.
*/
func (c *Command) AddSetting(target interface{}, flag, short, env string,
	def interface{}, help string, required bool) {

	if required && def != nil {
		Die("required setting '%s' does not take a default value", flag)
	}

	defVal, err := defaultValue(target, def)
	if err != nil {
		Die("setting '%s': %v", flag, err)
	}

	if env != "" {
		help = fmt.Sprintf("%s (%s)", help, env)
	}

	flags := c.cmd.Flags()
	if err := addFlag(flags, target, flag, short, defVal, help); err != nil {
		Die("setting '%s': %v", flag, err)
	}

	c.settings[flag] = &setting{
		flag: flag, env: env, required: required, target: target}

	c.viper.BindPFlag(flag, flags.Lookup(flag))
	if env != "" {
		c.viper.BindEnv(flag, env)
	}

	log.WithFields(log.Fields{
		"flag": flag, "env": env, "default": defVal}).Trace("setting added")
}

// ParseSettings resolves all settings into their targets. Call it first thing
// in the exec function.
func (c *Command) ParseSettings() error {
	for _, s := range c.settings {
		if err := c.resolve(s); err != nil {
			return err
		}
	}
	c.Args = c.cmd.Flags().Args()
	return nil
}

// resolve stores the effective value of s in its target. Viper does not write
// values coming from the environment into the flag's variable, hence the
// explicit assignment.
func (c *Command) resolve(s *setting) error {

	var val interface{}
	var zero bool

	switch t := s.target.(type) {
	case *string:
		*t = c.viper.GetString(s.flag)
		val, zero = *t, *t == ""
	case *int:
		*t = c.viper.GetInt(s.flag)
		val, zero = *t, *t == 0
	case *uint:
		*t = c.viper.GetUint(s.flag)
		val, zero = *t, *t == 0
	case *bool:
		*t = c.viper.GetBool(s.flag)
		val, zero = *t, !*t
	default:
		return fmt.Errorf("setting '%s' has unsupported type %T", s.flag, t)
	}

	log.WithFields(log.Fields{
		"flag":  s.flag,
		"isSet": c.viper.IsSet(s.flag),
	}).Tracef("resolved setting: '%v'", val)

	if s.required && zero {
		msg := fmt.Sprintf("you need to specify the --%s command line flag",
			s.flag)
		if s.env != "" {
			msg = fmt.Sprintf("%s or the %s environment variable", msg, s.env)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

//
type setting struct {
	flag     string
	env      string
	required bool
	target   interface{}
}

// defaultValue converts def to the type target points to.
func defaultValue(target, def interface{}) (reflect.Value, error) {

	typ := reflect.TypeOf(target)
	if typ == nil || typ.Kind() != reflect.Ptr {
		return reflect.Value{}, fmt.Errorf("target is not a pointer")
	}

	elem := typ.Elem()
	if def == nil {
		return reflect.Zero(elem), nil
	}

	if !reflect.TypeOf(def).ConvertibleTo(elem) {
		return reflect.Value{}, fmt.Errorf(
			"default value of type %T does not fit %s", def, elem)
	}
	return reflect.ValueOf(def).Convert(elem), nil
}

//
func addFlag(flags *pflag.FlagSet, target interface{}, flag, short string,
	def reflect.Value, help string) error {

	switch t := target.(type) {
	case *string:
		flags.StringVarP(t, flag, short, def.String(), help)
	case *int:
		flags.IntVarP(t, flag, short, int(def.Int()), help)
	case *uint:
		flags.UintVarP(t, flag, short, uint(def.Uint()), help)
	case *bool:
		flags.BoolVarP(t, flag, short, def.Bool(), help)
	default:
		return fmt.Errorf("unsupported type %T", target)
	}
	return nil
}

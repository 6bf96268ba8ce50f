/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/SSSOC-CAN/treadmill/utils"
	flags "github.com/jessevdk/go-flags"
	e "github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the object which will hold all of the config parameters
type Config struct {
	DefaultLogDir         bool     `yaml:"DefaultLogDir"`
	LogFileDir            string   `yaml:"LogFileDir" long:"logfiledir" description:"Choose the directory where the log file is stored"`
	MaxLogFiles           int64    `yaml:"MaxLogFiles" long:"maxlogfiles" description:"Maximum number of logfiles in the log rotation (0 for no rotation)"`
	MaxLogFileSize        int64    `yaml:"MaxLogFileSize" long:"maxlogfilesize" description:"Maximum size of a logfile in MB"`
	ConsoleOutput         bool     `yaml:"ConsoleOutput" long:"consoleoutput" description:"Whether log information is printed to the console"`
	LogLevel              string   `yaml:"LogLevel" long:"loglevel" description:"One of TRACE, DEBUG, INFO, WARN, ERROR, FATAL or PANIC"`
	GrpcPort              int64    `yaml:"GrpcPort" long:"grpc_port" description:"The port where Treadmill listens for gRPC API requests"`
	RestPort              int64    `yaml:"RestPort" long:"rest_port" description:"The port where Treadmill listens for REST API requests"`
	TLSCertPath           string   `yaml:"TLSCertPath" long:"tlscertpath" description:"Path to the TLS certificate, generated with the key when both are missing. TLS is disabled unless both paths are given"`
	TLSKeyPath            string   `yaml:"TLSKeyPath" long:"tlskeypath" description:"Path to the TLS key"`
	ExtraIPAddr           []string `yaml:"ExtraIPAddr" long:"tlsextraip" description:"Adds an extra ip to the generated certificate"` // optional parameter
	InitialRps            int32    `yaml:"InitialRps" long:"rps" description:"Requests per second the scheduler starts with (0 for unlimited)"`
	InitialMaxOutstanding int32    `yaml:"InitialMaxOutstanding" long:"max_outstanding" description:"Maximum outstanding requests the scheduler starts with (0 for unbounded)"`
	InitialPhase          string   `yaml:"InitialPhase" long:"phase" description:"Name of the load phase the scheduler starts in"`
}

// default_config returns the default configuration
// default_log_dir returns the default log directory
// default_grpc_port is the the default grpc port
var (
	config_file_name      string = "config.yaml"
	default_grpc_port     int64  = 7777
	default_rest_port     int64  = 8080
	default_log_file_size int64  = 10
	default_max_log_files int64  = 0
	default_log_level     string = "INFO"
	default_log_dir              = func() string {
		return utils.AppDataDir("treadmill", false)
	}
	default_config = func() Config {
		return Config{
			DefaultLogDir:  true,
			LogFileDir:     default_log_dir(),
			MaxLogFiles:    default_max_log_files,
			MaxLogFileSize: default_log_file_size,
			ConsoleOutput:  true,
			LogLevel:       default_log_level,
			GrpcPort:       default_grpc_port,
			RestPort:       default_rest_port,
		}
	}
)

// InitConfig returns the `Config` struct with either default values or values specified in `config.yaml`
func InitConfig(isTesting bool) (Config, error) {
	// Check if treadmill directory exists, if no then create it
	if !utils.FileExists(default_log_dir()) {
		err := os.MkdirAll(default_log_dir(), 0700)
		if err != nil {
			log.Println(err)
		}
	}
	return loadConfig(default_log_dir(), isTesting)
}

// loadConfig reads `config.yaml` from dir if present and parses command line flags unless testing
func loadConfig(dir string, isTesting bool) (Config, error) {
	config := default_config()
	configPath := filepath.Join(dir, config_file_name)
	if utils.FileExists(configPath) {
		config_file, err := ioutil.ReadFile(configPath)
		if err != nil {
			log.Println(err)
			return default_config(), nil
		}
		err = yaml.Unmarshal(config_file, &config)
		if err != nil {
			log.Println(err)
			config = default_config()
		} else {
			// Need to check if any config parameters aren't defined in `config.yaml` and assign them a default value
			config = check_yaml_config(config)
		}
	}
	// now to parse the flags
	if !isTesting {
		if _, err := flags.Parse(&config); err != nil {
			return Config{}, err
		}
	}
	if (config.TLSCertPath == "") != (config.TLSKeyPath == "") {
		return Config{}, e.New("TLSCertPath and TLSKeyPath must be set together")
	}
	return config, nil
}

// change_field changes the value of a specified field from the config struct
func change_field(field reflect.Value, new_value interface{}) {
	if field.IsValid() {
		if field.CanSet() {
			f := field.Kind()
			switch f {
			case reflect.String:
				if v, ok := new_value.(string); ok {
					field.SetString(v)
				} else {
					log.Fatal(fmt.Sprintf("Type of new_value: %v does not match the type of the field: string", new_value))
				}
			case reflect.Bool:
				if v, ok := new_value.(bool); ok {
					field.SetBool(v)
				} else {
					log.Fatal(fmt.Sprintf("Type of new_value: %v does not match the type of the field: bool", new_value))
				}
			case reflect.Int64:
				if v, ok := new_value.(int64); ok {
					field.SetInt(v)
				} else {
					log.Fatal(fmt.Sprintf("Type of new_value: %v does not match the type of the field: int64", new_value))
				}
			}
		}
	}
}

// check_yaml_config iterates over the Config struct fields and changes blank fields to default values
func check_yaml_config(config Config) Config {
	pv := reflect.ValueOf(&config)
	v := pv.Elem()
	field_names := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		field_name := field_names.Field(i).Name
		switch field_name {
		case "LogFileDir":
			if f.String() == "" {
				change_field(f, default_log_dir())
				dld := v.FieldByName("DefaultLogDir")
				change_field(dld, true)
			}
		case "MaxLogFileSize":
			if f.Int() == 0 {
				change_field(f, default_log_file_size)
			}
		case "LogLevel":
			if f.String() == "" {
				change_field(f, default_log_level)
			}
		case "GrpcPort":
			if f.Int() == 0 {
				change_field(f, default_grpc_port)
			}
		case "RestPort":
			if f.Int() == 0 {
				change_field(f, default_rest_port)
			}
		default:
			continue
		}
	}
	return config
}

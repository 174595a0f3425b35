package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opentracing/opentracing-go"
	flag "github.com/spf13/pflag"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"github.com/willie68/GoTikaMeta/internal/apiv1"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/serror"
	"github.com/willie68/GoTikaMeta/internal/services"
	"github.com/willie68/GoTikaMeta/internal/services/shttp"
)

var (
	port          int
	sslport       int
	serviceURL    string
	configFile    string
	serviceConfig config.Config
	tracer        opentracing.Tracer
	log           = logging.New().WithName("main")
)

func init() {
	// variables for parameter override
	log.Info("init service")
	flag.IntVarP(&port, "port", "p", 0, "port of the http server.")
	flag.IntVarP(&sslport, "sslport", "t", 0, "port of the https server.")
	flag.StringVarP(&configFile, "config", "c", "", "this is the path and filename to the config file")
	flag.StringVarP(&serviceURL, "serviceURL", "u", "", "service url from outside")
}

func main() {
	flag.Parse()
	defer logging.Logger.Close()

	serror.Service = config.Servicename
	if configFile == "" {
		configFolder, err := config.GetDefaultConfigFolder()
		if err != nil {
			log.Alertf("can't load config file: %s", err.Error())
			os.Exit(1)
		}
		configFile = fmt.Sprintf("%s/service.yaml", configFolder)
	}
	config.File = configFile
	log.Infof("using config file: %s", configFile)

	if err := config.Load(); err != nil {
		log.Alertf("can't load config file: %s", err.Error())
		os.Exit(1)
	}

	serviceConfig = config.Get()
	initConfig()
	initLogging()

	log.Info("service is starting")
	log.Infof("ssl: %t", serviceConfig.Sslport > 0)
	log.Infof("serviceURL: %s", serviceConfig.ServiceURL)

	var closer io.Closer
	if serviceConfig.OpenTracing.Host != "" || serviceConfig.OpenTracing.Endpoint != "" {
		var err error
		tracer, closer, err = initJaeger(config.Servicename, serviceConfig.OpenTracing)
		if err != nil {
			log.Alertf("can't create tracer: %s", err.Error())
		} else {
			opentracing.SetGlobalTracer(tracer)
			defer closer.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.InitServices(ctx, serviceConfig); err != nil {
		log.Alertf("could not initialise services. %s", err.Error())
		os.Exit(1)
	}
	defer services.Shutdown()

	ms, err := services.MetadataService()
	if err != nil {
		log.Alertf("could not get metadata service. %s", err.Error())
		os.Exit(1)
	}
	hs, err := services.HealthSystem()
	if err != nil {
		log.Alertf("could not get health system. %s", err.Error())
		os.Exit(1)
	}

	router, err := apiv1.APIRoutes(serviceConfig, tracer, ms, hs)
	if err != nil {
		log.Alertf("could not create api routes. %s", err.Error())
		os.Exit(1)
	}
	healthRouter := apiv1.HealthRoutes(serviceConfig, tracer, hs)

	if err := config.Watch(ctx, config.File, onConfigChange); err != nil {
		log.Alertf("can't watch config file, no hot reload: %s", err.Error())
	}

	sh := shttp.NewSHttp(serviceConfig)
	if err := sh.StartServers(router, healthRouter); err != nil {
		log.Alertf("could not start servers. %s", err.Error())
		os.Exit(1)
	}

	log.Info("waiting for clients")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	sh.ShutdownServers()
	log.Info("finished")
}

func initConfig() {
	if port > 0 {
		serviceConfig.Port = port
	}
	if sslport > 0 {
		serviceConfig.Sslport = sslport
	}
	if serviceURL != "" {
		serviceConfig.ServiceURL = serviceURL
	}
	config.Set(serviceConfig)
}

func initLogging() {
	var err error
	serviceConfig.Logging.Filename, err = config.ReplaceConfigdir(serviceConfig.Logging.Filename)
	if err != nil {
		log.Alertf("error wrong logging folder: %s", err.Error())
		os.Exit(1)
	}
	if err := logging.Init(serviceConfig.Logging); err != nil {
		log.Alertf("can't init gelf logging: %s", err.Error())
	}
}

// onConfigChange only the log level and the extraction settings are applied on the fly
func onConfigChange(c config.Config) {
	logging.Logger.SetLevel(c.Logging.Level)
	if err := services.Reconfigure(c); err != nil {
		log.Errorf("can't apply changed config: %s", err.Error())
	}
}

func initJaeger(servicename string, cnfg config.OpenTracing) (opentracing.Tracer, io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: servicename,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: cnfg.Host,
			CollectorEndpoint:  cnfg.Endpoint,
		},
	}
	return cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
}

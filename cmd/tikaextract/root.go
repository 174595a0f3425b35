package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/dao/simplefile"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/internal/services/extractor"
	"github.com/willie68/GoTikaMeta/internal/utils"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// output formats
const (
	formatJSON = "json"
	formatDump = "dump"
	formatText = "text"
)

type options struct {
	host    string
	port    int
	fileID  string
	url     string
	root    string
	format  string
	test    bool
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "tikaextract",
		Short: "Extract metadata with a tika server",
		Long: `Extract the json metadata of a stored file or an url using a remote tika server via its RESTful API.

Example:
  tikaextract --host localhost --port 9998 -f 2ef7bde608ce5404e97d5f042f95f89f1c232871`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.host, "host", "", "hostname or ip address of the tika server, overrides the configured host")
	f.IntVar(&o.port, "port", 0, "port of the tika server, overrides the configured port")
	f.StringVarP(&o.fileID, "fileid", "f", "", "content hash of the stored file to extract the metadata for")
	f.StringVar(&o.url, "url", "", "http(s) url to extract the metadata for")
	f.StringVar(&o.root, "root", "", "root path of the file storage, default is the configured resources rootpath")
	f.StringVarP(&o.format, "format", "o", formatDump, "output format: json, dump or text")
	f.BoolVar(&o.test, "test", false, "only test the connection to the tika server")
	f.StringVarP(&o.cfgFile, "config", "c", "", "path to the service config file")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "print debugging statements")
	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	if o.verbose {
		logging.Logger.SetLevel("DEBUG")
	} else {
		logging.Logger.SetLevel("ERROR")
	}
	switch o.format {
	case formatJSON, formatDump, formatText:
	default:
		return fmt.Errorf("unknown output format: %s", o.format)
	}

	cfg := config.DefaultConfig
	if o.cfgFile != "" {
		config.File = o.cfgFile
		if err := config.Load(); err != nil {
			return err
		}
		cfg = config.Get()
	}

	ecfg := extractor.NewConfig(cfg.Extractor, cfg.Plugins)
	ecfg.Mode = extractor.ModeServer
	if o.host != "" {
		ecfg.Host = o.host
	} else if ecfg.Host == "" {
		return errors.New("no host name set for tika server, pass in --host or set the host in the config")
	}
	if o.port > 0 {
		ecfg.Port = o.port
	} else if ecfg.Port == 0 {
		return errors.New("no port set for tika server, pass in --port or set the port in the config")
	}

	srv, err := extractor.NewServer(ecfg, nil)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if o.test {
		if err := srv.TestConnection(ctx); err != nil {
			return fmt.Errorf("could not connect to server at %s: %w", srv.BaseURI(), err)
		}
		cmd.Printf("connected to tika server at %s\n", srv.BaseURI())
		return nil
	}

	if o.fileID == "" && o.url == "" {
		return errors.New("no file id or url, you must pass in the file or url to extract metadata for")
	}
	if o.fileID != "" && !utils.IsContentHash(strings.ToLower(o.fileID)) {
		return fmt.Errorf("file id must be a content hash: %s", o.fileID)
	}
	if o.url != "" && !extractor.ValidateResource(&model.URLResource{ExternalURL: o.url}) {
		return fmt.Errorf("not a valid http(s) url: %s", o.url)
	}

	if !srv.IsReady(ctx) {
		return fmt.Errorf("could not connect to server at %s", srv.BaseURI())
	}

	var js string
	if o.fileID != "" {
		js, err = fileMetadata(ctx, srv, cfg, o)
	} else {
		js, err = srv.GetURLMetadata(ctx, o.url)
	}
	if errors.Is(err, extractor.ErrNoContent) {
		cmd.Println("no metadata")
		return nil
	}
	if err != nil {
		return err
	}
	return printMetadata(cmd, o.format, js)
}

func fileMetadata(ctx context.Context, srv *extractor.Server, cfg config.Config, o *options) (string, error) {
	root := o.root
	if root == "" {
		var err error
		root, err = config.GetConfigValueAsPath(cfg.Resources, "rootpath")
		if err != nil {
			return "", err
		}
	}
	stg := &simplefile.FileStorage{RootPath: root}
	if err := stg.Init(); err != nil {
		return "", err
	}
	defer stg.Close()
	id := strings.ToLower(o.fileID)
	stream, err := stg.GetStream(ctx, &model.FileResource{ContentHash: id})
	if err != nil {
		return "", err
	}
	if stream == nil {
		return "", fmt.Errorf("no file found with id=%s", o.fileID)
	}
	defer stream.Close()
	return srv.GetMetadata(ctx, stream)
}

func printMetadata(cmd *cobra.Command, format, js string) error {
	if format == formatJSON {
		cmd.Println(js)
		return nil
	}
	if strings.TrimSpace(js) == "" {
		cmd.Println("no metadata")
		return nil
	}
	raw, err := model.ParseRawMetadata([]byte(js))
	if err != nil {
		return err
	}
	if format == formatText {
		r := metadata.FromRaw("", raw)
		cmd.Printf("variant: %s\n", r.Variant)
		for _, v := range r.Values() {
			cmd.Printf("%s: %s\n", v.Name, v.Value)
		}
		return nil
	}
	flat := raw.Flat()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s: %s\n", k, flat[k])
	}
	return nil
}

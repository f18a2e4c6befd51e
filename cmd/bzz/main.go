package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/bzz-gateway-client/bzz"
	"github.com/ruteri/bzz-gateway-client/cmd/flags"
	"github.com/ruteri/bzz-gateway-client/digest"
	"github.com/ruteri/bzz-gateway-client/dirs/tarfs"
	"github.com/ruteri/bzz-gateway-client/interfaces"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

var flagPath = &cli.StringFlag{
	Name:  "path",
	Usage: "path of the entry within the manifest",
}
var flagMode = &cli.StringFlag{
	Name:  "mode",
	Value: string(interfaces.ModeDefault),
	Usage: "download mode: default, immutable or raw",
}
var flagContentType = &cli.StringFlag{
	Name:  "content-type",
	Usage: "content type of the file; uploads without one are raw",
}
var flagOut = &cli.StringFlag{
	Name:  "out",
	Usage: "write the download to this file, or below this directory with --dir",
}
var flagDir = &cli.BoolFlag{
	Name:  "dir",
	Usage: "download the whole manifest as a directory",
}
var flagManifest = &cli.StringFlag{
	Name:  "manifest",
	Usage: "hash of the manifest to add the upload to",
}
var flagDefaultPath = &cli.StringFlag{
	Name:  "default-path",
	Usage: "directory entry served at the manifest root",
}
var flagEncrypt = &cli.BoolFlag{
	Name:  "encrypt",
	Usage: "ask the gateway to encrypt the upload",
}

var flagUser = &cli.StringFlag{
	Name:  "user",
	Usage: "feed owner address",
}
var flagTopic = &cli.StringFlag{
	Name:  "topic",
	Usage: "feed topic, 32-byte hex",
}
var flagName = &cli.StringFlag{
	Name:  "name",
	Usage: "feed name",
}
var flagPrivateKey = &cli.StringFlag{
	Name:     "privkey",
	Required: true,
	EnvVars:  []string{"BZZ_PRIVKEY"},
	Usage:    "hex private key signing the feed update",
}
var flagData = &cli.StringFlag{
	Name:  "data",
	Usage: "update payload, 0x-prefixed hex or text",
}
var flagFile = &cli.StringFlag{
	Name:  "file",
	Usage: "read the update payload from this file",
}

var feedFlags = []cli.Flag{flagUser, flagTopic, flagName}

func main() {
	app := &cli.App{
		Name:  "bzz",
		Usage: "Talk to a Swarm HTTP gateway",
		Flags: flags.CommonFlags,
		Commands: []*cli.Command{
			{
				Name:      "hash",
				Usage:     "resolve a domain to its content hash",
				ArgsUsage: "<domain>",
				Action:    withClient(runHash),
			},
			{
				Name:      "list",
				Usage:     "list a manifest",
				ArgsUsage: "<hash>",
				Flags:     []cli.Flag{flagPath},
				Action:    withClient(runList),
			},
			{
				Name:      "download",
				Usage:     "download a file or a whole manifest",
				ArgsUsage: "<hash>",
				Flags:     []cli.Flag{flagPath, flagMode, flagContentType, flagOut, flagDir},
				Action:    withClient(runDownload),
			},
			{
				Name:      "upload",
				Usage:     "upload a file or a directory",
				ArgsUsage: "<file|directory>",
				Flags:     []cli.Flag{flagContentType, flagManifest, flagPath, flagDefaultPath, flagEncrypt},
				Action:    withClient(runUpload),
			},
			{
				Name:      "delete",
				Usage:     "remove an entry from a manifest and print the new manifest hash",
				ArgsUsage: "<hash> <path>",
				Action:    withClient(runDelete),
			},
			{
				Name:   "feed-meta",
				Usage:  "print the template of the next feed update",
				Flags:  feedFlags,
				Action: withClient(runFeedMeta),
			},
			{
				Name:   "feed-post",
				Usage:  "sign and publish a feed update",
				Flags:  append([]cli.Flag{flagPrivateKey, flagData, flagFile}, feedFlags...),
				Action: withClient(runFeedPost),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type action func(cCtx *cli.Context, client *bzz.Client) error

func withClient(fn action) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		logger := flags.SetupLogger(cCtx)
		client, err := flags.ConfigureClient(cCtx, logger)
		if err != nil {
			logger.Error("Failed to create gateway client", "err", err)
			return err
		}
		if err := fn(cCtx, client); err != nil {
			logger.Error("Command failed", "command", cCtx.Command.Name, "err", err)
			return err
		}
		return nil
	}
}

func requireArgs(cCtx *cli.Context, n int) error {
	if cCtx.NArg() != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, cCtx.NArg())
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runHash(cCtx *cli.Context, client *bzz.Client) error {
	if err := requireArgs(cCtx, 1); err != nil {
		return err
	}
	hash, err := client.Hash(cCtx.Context, cCtx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, hash)
	return nil
}

func runList(cCtx *cli.Context, client *bzz.Client) error {
	if err := requireArgs(cCtx, 1); err != nil {
		return err
	}
	hash := interfaces.NewContentHash(cCtx.Args().First())
	result, err := client.List(cCtx.Context, hash, &interfaces.DownloadOptions{Path: cCtx.String(flagPath.Name)})
	if err != nil {
		return err
	}
	return printJSON(cCtx.App.Writer, result)
}

func runDownload(cCtx *cli.Context, client *bzz.Client) error {
	if err := requireArgs(cCtx, 1); err != nil {
		return err
	}
	hash := interfaces.NewContentHash(cCtx.Args().First())
	out := cCtx.String(flagOut.Name)
	fs := afero.NewOsFs()

	if cCtx.Bool(flagDir.Name) {
		if out == "" {
			return errors.New("--out is required with --dir")
		}
		dir, err := client.DownloadDirectory(cCtx.Context, hash)
		if err != nil {
			return err
		}
		return tarfs.WriteDirectory(fs, out, dir)
	}

	data, err := client.DownloadData(cCtx.Context, hash, &interfaces.DownloadOptions{
		Mode:        interfaces.BzzMode(cCtx.String(flagMode.Name)),
		Path:        cCtx.String(flagPath.Name),
		ContentType: cCtx.String(flagContentType.Name),
	})
	if err != nil {
		return err
	}
	if out == "" {
		_, err = cCtx.App.Writer.Write(data)
		return err
	}
	return afero.WriteFile(fs, out, data, 0644)
}

func runUpload(cCtx *cli.Context, client *bzz.Client) error {
	if err := requireArgs(cCtx, 1); err != nil {
		return err
	}
	source := cCtx.Args().First()
	opts := &interfaces.UploadOptions{
		ContentType:  cCtx.String(flagContentType.Name),
		ManifestHash: interfaces.NewContentHash(cCtx.String(flagManifest.Name)),
		Path:         cCtx.String(flagPath.Name),
		DefaultPath:  cCtx.String(flagDefaultPath.Name),
		Encrypt:      cCtx.Bool(flagEncrypt.Name),
	}

	fs := afero.NewOsFs()
	isDir, err := afero.IsDir(fs, source)
	if err != nil {
		return err
	}

	var payload any
	if isDir {
		payload, err = tarfs.ReadDirectory(fs, source)
	} else {
		payload, err = afero.ReadFile(fs, source)
	}
	if err != nil {
		return err
	}

	hash, err := client.Upload(cCtx.Context, payload, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, hash)
	return nil
}

func runDelete(cCtx *cli.Context, client *bzz.Client) error {
	if err := requireArgs(cCtx, 2); err != nil {
		return err
	}
	hash := interfaces.NewContentHash(cCtx.Args().Get(0))
	updated, err := client.DeleteResource(cCtx.Context, hash, cCtx.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, updated)
	return nil
}

func feedParams(cCtx *cli.Context) interfaces.FeedParams {
	return interfaces.FeedParams{
		User:  cCtx.String(flagUser.Name),
		Topic: cCtx.String(flagTopic.Name),
		Name:  cCtx.String(flagName.Name),
	}
}

func runFeedMeta(cCtx *cli.Context, client *bzz.Client) error {
	meta, err := client.GetFeedMetadata(cCtx.Context, feedParams(cCtx))
	if err != nil {
		return err
	}
	return printJSON(cCtx.App.Writer, meta)
}

func runFeedPost(cCtx *cli.Context, client *bzz.Client) error {
	privateKey, err := crypto.HexToECDSA(cCtx.String(flagPrivateKey.Name))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	var data []byte
	switch {
	case cCtx.IsSet(flagFile.Name):
		data, err = afero.ReadFile(afero.NewOsFs(), cCtx.String(flagFile.Name))
		if err != nil {
			return err
		}
	case cCtx.IsSet(flagData.Name):
		data, err = digest.ParseData(cCtx.String(flagData.Name))
		if err != nil {
			return err
		}
	default:
		return errors.New("one of --data or --file is required")
	}

	params := feedParams(cCtx)
	if params.User == "" {
		params.User = crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
	}

	meta, err := client.GetFeedMetadata(cCtx.Context, params)
	if err != nil {
		return err
	}

	d, err := digest.FeedDigest(meta, data)
	if err != nil {
		return err
	}
	digestBytes, err := hexutil.Decode(d)
	if err != nil {
		return err
	}
	signature, err := crypto.Sign(digestBytes, privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign update: %w", err)
	}

	if err := client.PostSignedFeedUpdate(cCtx.Context, meta, data, signature); err != nil {
		return err
	}
	fmt.Fprintf(cCtx.App.Writer, "Published update at time %d, level %d\n", meta.Epoch.Time, meta.Epoch.Level)
	return nil
}

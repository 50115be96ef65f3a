package main

import (
	"flag"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/config"
	"github.com/mogaika/scrap_remaster/pack/scrap"
	"github.com/mogaika/scrap_remaster/utils"
	"github.com/mogaika/scrap_remaster/utils/gltfutils"
)

func export(in, out string, dump bool, exlog *utils.Logger) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	meshes := scrap.ScanMD3D(data, exlog)
	if len(meshes) == 0 {
		return errors.Errorf("No %s chunks found in %q", scrap.MD3D_MAGIC, in)
	}
	for _, m := range meshes {
		log.Printf("[md3dexport] %q at 0x%x: %d triangles", m.Name, m.Offset, len(m.Triangles))
		if dump {
			utils.Dump(m.Info())
		}
	}

	doc, err := scrap.ExportGLTF(meshes)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return gltfutils.ExportBinary(f, doc)
}

func main() {
	var in, out, encoding string
	var dump, verbose bool
	flag.StringVar(&in, "in", "", "File containing MD3D chunks (.sm3, .cm3, extracted chunk)")
	flag.StringVar(&out, "out", "", "Output .glb path")
	flag.StringVar(&encoding, "encoding", "", "Codepage of mesh names")
	flag.BoolVar(&dump, "dump", false, "Dump decoded meshes")
	flag.BoolVar(&verbose, "v", false, "Trace chunk decoding to stderr")
	flag.Parse()

	if in == "" || out == "" {
		flag.PrintDefaults()
		return
	}
	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}

	var exlog *utils.Logger
	if verbose {
		exlog = &utils.Logger{Writer: os.Stderr}
	}

	if err := export(in, out, dump, exlog); err != nil {
		log.Fatal(err)
	}
}

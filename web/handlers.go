package web

import (
	"bytes"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/config"
	"github.com/mogaika/scrap_remaster/d3d"
	"github.com/mogaika/scrap_remaster/pack/scrap"
	"github.com/mogaika/scrap_remaster/utils"
	"github.com/mogaika/scrap_remaster/utils/gltfutils"
	"github.com/mogaika/scrap_remaster/vfs"
	"github.com/mogaika/scrap_remaster/webutils"
)

type fvfResponse struct {
	FVF    uint32     `json:"fvf"`
	Format string     `json:"format"`
	Size   int        `json:"size"`
	Layout d3d.Layout `json:"layout"`
}

func HandlerAjaxFVF(w http.ResponseWriter, r *http.Request) {
	f, err := d3d.ParseFVF(mux.Vars(r)["fvf"])
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, err)
		return
	}
	webutils.WriteJson(w, &fvfResponse{
		FVF:    uint32(f),
		Format: f.String(),
		Size:   f.VertexSize(),
		Layout: d3d.NewLayout(f),
	})
}

func HandlerAjaxPack(w http.ResponseWriter, r *http.Request) {
	if files, err := ServerDirectory.List(); err != nil {
		webutils.WriteError(w, err)
	} else {
		sort.Strings(files)
		webutils.WriteJson(w, files)
	}
}

func readPackFile(w http.ResponseWriter, file string) ([]byte, bool) {
	data, err := vfs.ReadFile(ServerDirectory, file)
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusNotFound, err)
		return nil, false
	}
	return data, true
}

func fileLogger(file string) (*utils.Logger, func()) {
	logger, f := utils.NewFileLogger(config.LogDir(), file+".log")
	if f == nil {
		return nil, func() {}
	}
	return logger, func() { f.Close() }
}

func HandlerAjaxPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, ok := readPackFile(w, file)
	if !ok {
		return
	}
	exlog, closeLog := fileLogger(file)
	defer closeLog()

	if bytes.HasPrefix(data, []byte(scrap.LFVF_MAGIC)) {
		l, err := scrap.NewLFVFFromData(data, exlog)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		webutils.WriteJson(w, l.Info())
		return
	}

	meshes := scrap.ScanMD3D(data, exlog)
	infos := make([]*scrap.MeshInfo, len(meshes))
	for i, m := range meshes {
		infos[i] = m.Info()
	}
	webutils.WriteJson(w, infos)
}

func HandlerDumpPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if data, ok := readPackFile(w, file); ok {
		webutils.WriteFile(w, bytes.NewReader(data), path.Base(file))
	}
}

func HandlerGLTFPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, ok := readPackFile(w, file)
	if !ok {
		return
	}
	exlog, closeLog := fileLogger(file)
	defer closeLog()

	meshes := scrap.ScanMD3D(data, exlog)
	if len(meshes) == 0 {
		webutils.WriteErrorStatus(w, http.StatusNotFound, errors.Errorf("No %s chunks in %q", scrap.MD3D_MAGIC, file))
		return
	}
	doc, err := scrap.ExportGLTF(meshes)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, doc); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to encode glb"))
		return
	}
	name := strings.TrimSuffix(path.Base(file), path.Ext(file)) + ".glb"
	webutils.WriteFile(w, &buf, name)
}

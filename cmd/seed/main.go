// seed importa un documento JSON heredado (el volcado del almacenamiento anterior), aplica la
// migración y lo persiste en el backend configurado (STORE_BACKEND).
//
// Uso: go run ./cmd/seed [-latin1] [-lookup productos_proveedor.json] [-out migrado.json] datos.json
// -latin1 decodifica el archivo como ISO-8859-1 (exportaciones antiguas).
// -lookup es un objeto {"productId": "supplierId"} para completar supplierId faltantes.
// Con STORE_BACKEND=memory el resultado solo se escribe en -out (o stdout).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Mayorista-api/pkg/config"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	lookupPath := flag.String("lookup", "", "JSON productId -> supplierId")
	outPath := flag.String("out", "", "escribir el documento migrado en este archivo")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] [-lookup archivo] [-out archivo] datos.json")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	snap, err := readSnapshot(flag.Arg(0), *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer documento heredado")
	}
	lookup := map[string]string{}
	if *lookupPath != "" {
		if err := readJSON(*lookupPath, &lookup); err != nil {
			log.Fatal().Err(err).Msg("leer lookup de proveedores")
		}
	}

	ctx := context.Background()
	var target repository.SnapshotRepository = memory.NewVolatileRepository(nil)
	if cfg.Store.Backend == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewSnapshotRepository(pool, cfg.Store.SnapshotKey)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de snapshot")
		}
		target = repo
	}

	// Open carga lo que haya en el destino; el documento importado lo reemplaza antes de migrar.
	if err := target.Save(ctx, snap); err != nil {
		log.Fatal().Err(err).Msg("guardar documento importado")
	}
	store, report, err := memory.Open(ctx, target, memory.MigrationOptions{
		SuperAdminName:     cfg.SuperAdmin.Name,
		SuperAdminEmail:    cfg.SuperAdmin.Email,
		SuperAdminPassword: cfg.SuperAdmin.Password,
		SupplierLookup:     lookup,
		DefaultSupplierID:  cfg.Store.DefaultSupplierID,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migrar documento")
	}
	log.Info().Interface("report", report).Str("backend", cfg.Store.Backend).Msg("documento migrado")

	if cfg.Store.Backend == "memory" || *outPath != "" {
		if err := writeSnapshot(*outPath, store.Snapshot()); err != nil {
			log.Fatal().Err(err).Msg("escribir documento migrado")
		}
	}
}

func readSnapshot(path string, latin1 bool) (*entity.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	var snap entity.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return &snap, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeSnapshot(path string, snap *entity.Snapshot) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Package dbtest opens an in-memory sqlite database carrying the storefront
// schema so repositories and workflows can be exercised without Postgres.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE estado_pedido (id INTEGER PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE estado_suscripcion (id INTEGER PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE tipo_item (id INTEGER PRIMARY KEY AUTOINCREMENT, nombre TEXT NOT NULL)`,
	`CREATE TABLE cliente (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  auth_user_id TEXT,
  email TEXT NOT NULL,
  nombre TEXT,
  etiqueta TEXT,
  puntos_acumulados INTEGER NOT NULL DEFAULT 0,
  direccion TEXT,
  created_at DATETIME
)`,
	`CREATE UNIQUE INDEX ux_cliente_auth_user_id ON cliente (auth_user_id) WHERE auth_user_id IS NOT NULL`,
	`CREATE TABLE direccion_cliente (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL REFERENCES cliente(id),
  alias TEXT NOT NULL,
  calle TEXT NOT NULL,
  altura TEXT NOT NULL,
  piso TEXT,
  codigo_postal TEXT NOT NULL,
  ciudad TEXT NOT NULL,
  provincia TEXT NOT NULL,
  es_principal BOOLEAN NOT NULL DEFAULT 0,
  created_at DATETIME
)`,
	`CREATE UNIQUE INDEX ux_direccion_cliente_principal ON direccion_cliente (cliente_id) WHERE es_principal = 1`,
	`CREATE TABLE metodo_pago (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL REFERENCES cliente(id),
  proveedor TEXT NOT NULL,
  procesador_card_id TEXT NOT NULL,
  marca TEXT NOT NULL,
  tipo TEXT NOT NULL,
  ultimos_4 TEXT NOT NULL,
  exp_mes INTEGER NOT NULL,
  exp_anio INTEGER NOT NULL,
  es_default BOOLEAN NOT NULL DEFAULT 0,
  created_at DATETIME
)`,
	`CREATE TABLE item (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  descripcion TEXT,
  precio NUMERIC NOT NULL,
  precio_puntos INTEGER,
  tipo_item_id INTEGER REFERENCES tipo_item(id),
  imagen_url TEXT
)`,
	`CREATE TABLE tipo_suscripcion (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  descripcion TEXT,
  precio_recurrente NUMERIC NOT NULL
)`,
	`CREATE TABLE tipo_suscripcion_item (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  tipo_suscripcion_id INTEGER NOT NULL REFERENCES tipo_suscripcion(id),
  item_id INTEGER NOT NULL REFERENCES item(id),
  cantidad INTEGER NOT NULL,
  primer_mes BOOLEAN NOT NULL DEFAULT 0
)`,
	`CREATE TABLE suscripcion (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL REFERENCES cliente(id),
  tipo_suscripcion_id INTEGER NOT NULL REFERENCES tipo_suscripcion(id),
  metodo_pago_id INTEGER REFERENCES metodo_pago(id),
  estado_suscripcion_id INTEGER NOT NULL REFERENCES estado_suscripcion(id),
  fecha_inicio DATETIME NOT NULL,
  fecha_cobro DATETIME NOT NULL,
  direccion_envio TEXT
)`,
	`CREATE TABLE pedido (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL REFERENCES cliente(id),
  suscripcion_id INTEGER REFERENCES suscripcion(id),
  metodo_pago_id INTEGER REFERENCES metodo_pago(id),
  total NUMERIC NOT NULL,
  fecha_pedido DATETIME NOT NULL,
  fecha_despacho DATETIME,
  fecha_entrega DATETIME,
  estado_pedido_id INTEGER NOT NULL REFERENCES estado_pedido(id),
  envio_calle TEXT,
  envio_altura TEXT,
  envio_piso TEXT,
  envio_cp TEXT,
  envio_ciudad TEXT,
  envio_provincia TEXT,
  direccion_envio TEXT
)`,
	`CREATE TABLE pedido_item (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  pedido_id INTEGER NOT NULL REFERENCES pedido(id),
  item_id INTEGER NOT NULL REFERENCES item(id),
  cantidad INTEGER NOT NULL CHECK (cantidad >= 1),
  precio_unitario NUMERIC NOT NULL
)`,
	`INSERT INTO estado_pedido (id, nombre) VALUES (1, 'Pendiente'), (2, 'Despachado'), (3, 'Entregado'), (4, 'Cancelado')`,
	`INSERT INTO estado_suscripcion (id, nombre) VALUES (1, 'Activa'), (2, 'Pausada'), (3, 'Cancelada')`,
}

// Open returns a fresh database private to the calling test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// a single connection keeps the memory database alive and serializes
	// transactions the way Postgres row locks would for these tests
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v\n%s", err, stmt)
		}
	}
	return conn
}

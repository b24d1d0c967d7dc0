package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/crm-api/pkg/config"
)

const defaultPort = "5432"

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfigFor(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfigFor arma la configuración del pool sin abrir conexiones.
func poolConfigFor(ctx context.Context, cfg config.DBConfig) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	var r *ipv4Resolver
	if cfg.ForceIPv4 {
		r = newIPv4Resolver(cfg.FallbackDNS)
		dsn = r.rewriteURL(ctx, dsn)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if r != nil {
		poolConfig.ConnConfig.DialFunc = r.dial
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	// NUMERIC <-> decimal.Decimal en cada conexión nueva.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

type lookupFunc func(ctx context.Context, network, host string) ([]net.IP, error)

// ipv4Resolver traduce hosts a IPv4. fallback se consulta solo si primary falla o no trae IPv4.
type ipv4Resolver struct {
	primary  lookupFunc
	fallback lookupFunc
	dialer   net.Dialer
}

func newIPv4Resolver(fallbackDNS string) *ipv4Resolver {
	r := &ipv4Resolver{primary: net.DefaultResolver.LookupIP}
	if fallbackDNS != "" {
		fb := &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", fallbackDNS)
			},
		}
		r.fallback = fb.LookupIP
	}
	return r
}

func (r *ipv4Resolver) resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", errNoIPv4
	}
	if host == "" {
		return "", errNoIPv4
	}
	ip, err := firstIPv4(ctx, r.primary, host)
	if err != nil && r.fallback != nil {
		return firstIPv4(ctx, r.fallback, host)
	}
	return ip, err
}

func firstIPv4(ctx context.Context, lookup lookupFunc, host string) (string, error) {
	ips, err := lookup(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", errNoIPv4
}

// dial conecta por tcp4 cuando el host resuelve a IPv4; si no, usa la red pedida.
func (r *ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := r.resolve(ctx, host)
	if err != nil {
		return r.dialer.DialContext(ctx, network, addr)
	}
	return r.dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// rewriteURL reemplaza el host de una URL postgres:// por su IPv4. Devuelve dsn sin cambios
// si no es una URL o el host no resuelve a IPv4.
func (r *ipv4Resolver) rewriteURL(ctx context.Context, dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	ipv4, err := r.resolve(ctx, u.Hostname())
	if err != nil {
		return dsn
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}

package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"netinv/pkg/communication"
	"netinv/pkg/models"
	"netinv/pkg/worker"

	"github.com/gosnmp/gosnmp"
)

// Probe names used in events and metrics
const (
	ProbeConnectivity = "connectivity"
	ProbeSNMP         = "snmp"
	ProbeSSH          = "ssh"
)

const oidSysName = "1.3.6.1.2.1.1.5.0"

type dialTCPFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// Recorder receives probe outcomes for metrics
type Recorder interface {
	RecordProbe(probe string, reachable bool, duration time.Duration)
}

// Config holds the prober settings
type Config struct {
	Timeout time.Duration
	// QueueWait caps how long a request waits for a free worker. Defaults to Timeout.
	QueueWait time.Duration
	Workers   int
	QueueSize int
	SNMPPort  int
	SSHPort   int
	Community string
}

type taskKind int

const (
	taskTCP taskKind = iota
	taskSNMP
)

type task struct {
	kind      taskKind
	ip        string
	port      int
	community string
}

type outcome struct {
	reachable bool
	value     string
	err       error
}

// Prober runs TCP connect checks and SNMP GETs on a bounded worker pool
type Prober struct {
	cfg Config

	dialTCP       dialTCPFunc
	newSnmpClient func() gosnmp.Handler

	pool     *worker.Pool[task, outcome]
	events   chan<- models.Event
	recorder Recorder
}

// NewProber creates a prober. events and recorder may be nil.
func NewProber(cfg Config, events chan<- models.Event, recorder Recorder) *Prober {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.QueueWait <= 0 {
		cfg.QueueWait = cfg.Timeout
	}
	if cfg.SNMPPort == 0 {
		cfg.SNMPPort = 161
	}
	if cfg.SSHPort == 0 {
		cfg.SSHPort = 22
	}
	if cfg.Community == "" {
		cfg.Community = models.DefaultSNMPCommunity
	}

	p := &Prober{
		cfg:           cfg,
		dialTCP:       net.DialTimeout,
		newSnmpClient: gosnmp.NewHandler,
		events:        events,
		recorder:      recorder,
	}
	p.pool = worker.NewPool(cfg.Workers, cfg.QueueSize, "probe", p.execute)
	return p
}

// Start launches the probe workers; they stop with ctx
func (p *Prober) Start(ctx context.Context) {
	p.pool.Start(ctx)
}

// Connectivity checks the SNMP and SSH ports concurrently
func (p *Prober) Connectivity(ctx context.Context, ip string) models.ConnectivityResponse {
	start := time.Now()

	var snmp, ssh bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		snmp = p.tcpReachable(ctx, ip, p.cfg.SNMPPort)
	}()
	go func() {
		defer wg.Done()
		ssh = p.tcpReachable(ctx, ip, p.cfg.SSHPort)
	}()
	wg.Wait()

	resp := models.ConnectivityResponse{SNMP: snmp, SSH: ssh, Any: snmp || ssh}
	p.report(ProbeConnectivity, ip, resp.Any, time.Since(start))
	return resp
}

// SSH checks that the SSH port accepts TCP connections. port 0 uses the default.
func (p *Prober) SSH(ctx context.Context, ip string, port int) models.SSHTestResponse {
	if port == 0 {
		port = p.cfg.SSHPort
	}
	start := time.Now()
	reachable := p.tcpReachable(ctx, ip, port)
	p.report(ProbeSSH, ip, reachable, time.Since(start))
	return models.SSHTestResponse{Reachable: reachable}
}

// SNMP performs one SNMPv2c GET of sysName. Any failure is returned as an error.
func (p *Prober) SNMP(ctx context.Context, ip, community string, port int) (models.SNMPTestResponse, error) {
	if community == "" {
		community = p.cfg.Community
	}
	if port == 0 {
		port = p.cfg.SNMPPort
	}

	start := time.Now()
	res, err := p.submit(ctx, task{kind: taskSNMP, ip: ip, port: port, community: community})
	if err != nil {
		err = fmt.Errorf("snmp test for %s not completed: %w", ip, err)
	} else {
		err = res.err
	}
	p.report(ProbeSNMP, ip, err == nil, time.Since(start))
	if err != nil {
		return models.SNMPTestResponse{}, err
	}
	return models.SNMPTestResponse{Reachable: true, Value: res.value}, nil
}

// submit runs t on the pool. Queueing plus execution is bounded by QueueWait+Timeout.
func (p *Prober) submit(ctx context.Context, t task) (outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.QueueWait+p.cfg.Timeout)
	defer cancel()
	return p.pool.Submit(ctx, t)
}

func (p *Prober) tcpReachable(ctx context.Context, ip string, port int) bool {
	res, err := p.submit(ctx, task{kind: taskTCP, ip: ip, port: port})
	if err != nil {
		slog.Debug("Probe not run", "component", "Prober", "ip_address", ip, "port", port, "error", err)
		return false
	}
	return res.reachable
}

// execute runs on a pool worker
func (p *Prober) execute(ctx context.Context, t task) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}
	switch t.kind {
	case taskTCP:
		return outcome{reachable: p.dial(t.ip, t.port)}
	case taskSNMP:
		value, err := p.snmpGet(t.ip, t.port, t.community)
		return outcome{reachable: err == nil, value: value, err: err}
	default:
		return outcome{err: fmt.Errorf("unknown probe task %d", t.kind)}
	}
}

func (p *Prober) dial(ip string, port int) bool {
	conn, err := p.dialTCP("tcp", net.JoinHostPort(ip, strconv.Itoa(port)), p.cfg.Timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (p *Prober) snmpGet(ip string, port int, community string) (string, error) {
	client := p.newSnmpClient()
	client.SetTarget(ip)
	client.SetPort(uint16(port))
	client.SetCommunity(community)
	client.SetVersion(gosnmp.Version2c)
	client.SetTimeout(p.cfg.Timeout)
	client.SetRetries(0)

	if err := client.Connect(); err != nil {
		return "", fmt.Errorf("snmp connect to %s: %w", ip, err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.Get([]string{oidSysName})
	if err != nil {
		return "", fmt.Errorf("snmp get from %s: %w", ip, err)
	}
	if resp.Error != gosnmp.NoError {
		return "", fmt.Errorf("snmp get from %s: error status %v", ip, resp.Error)
	}
	if len(resp.Variables) == 0 {
		return "", fmt.Errorf("snmp get from %s: empty response", ip)
	}

	return pduToString(resp.Variables[0])
}

func (p *Prober) report(probe, ip string, reachable bool, took time.Duration) {
	if p.recorder != nil {
		p.recorder.RecordProbe(probe, reachable, took)
	}
	communication.SendEvent(p.events, models.Event{
		Type: models.EventProbeResult,
		Payload: &models.ProbeResultEvent{
			IPAddress: ip,
			Probe:     probe,
			Reachable: reachable,
			Timestamp: time.Now(),
		},
	}, "Prober")
}

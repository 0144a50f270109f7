package config

import (
	"os"
	"path/filepath"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/p6nj/bpptng-grapher/formula"
	"github.com/p6nj/bpptng-grapher/plot"
)

func Test(t *testing.T) { TestingT(t) }

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) TestMissingFileIsDefault(c *C) {
	cfg, err := Load(filepath.Join(c.MkDir(), "none.yaml"))
	c.Assert(err, IsNil)
	c.Check(cfg, DeepEquals, Default())
	c.Check(cfg.Resolution, Equals, formula.DefaultResolution)
	c.Check(cfg.PlotDomain(), Equals, plot.DefaultDomain)
	c.Check(cfg.SampleRate, Equals, 48000)
}

func (s *ConfigSuite) TestLoad(c *C) {
	path := filepath.Join(c.MkDir(), "config.yaml")
	data := `
resolution: 5000
domain:
  min: -1
  max: 3.5
listen: false
sample_rate: 44100
`
	c.Assert(os.WriteFile(path, []byte(data), 0o644), IsNil)
	cfg, err := Load(path)
	c.Assert(err, IsNil)
	c.Check(cfg.Resolution, Equals, formula.MaxResolution)
	c.Check(cfg.PlotDomain(), Equals, plot.Domain{Min: -1, Max: 3.5})
	c.Check(cfg.Listen, Equals, false)
	c.Check(cfg.SampleRate, Equals, 44100)
}

func (s *ConfigSuite) TestPartialFileKeepsDefaults(c *C) {
	cfg, err := Parse([]byte("resolution: 42\n"))
	c.Assert(err, IsNil)
	c.Check(cfg.Resolution, Equals, 42)
	c.Check(cfg.Domain, Equals, Default().Domain)
	c.Check(cfg.Listen, Equals, true)
}

func (s *ConfigSuite) TestInvalid(c *C) {
	_, err := Parse([]byte("domain: {min: 2, max: 1}\n"))
	c.Check(err, ErrorMatches, `invalid domain \[2, 1\]`)

	_, err = Parse([]byte("sample_rate: -3\n"))
	c.Check(err, ErrorMatches, "invalid sample rate -3")

	_, err = Parse([]byte("resolution: [1\n"))
	c.Check(err, ErrorMatches, "invalid config: .*")
}

// Package config provides configuration types shared by the pingpong
// packages: the Options a round trip runs with, the Spawner and Worker
// abstractions, and the environment handshake between an initiator and a
// child-process responder.
package config

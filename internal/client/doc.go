// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles and runs a client node.
//
// It wires the identity, storages and services of the node to a transport
// and keeps the transfer and delivery jobs running until shutdown.
package client

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Route maps an application id to the address of its adapter.
type Route struct {
	AppID     string    `json:"app_id"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransportInventory is what a transport reports about the bundles it holds.
type TransportInventory struct {
	TransportID string   `json:"transport_id"`
	Present     []string `json:"present"`
}

// InventoryResponse tells a transport what to do with its bundle storage.
type InventoryResponse struct {
	ToDownload []string `json:"to_download"`
	ToDelete   []string `json:"to_delete"`
}
